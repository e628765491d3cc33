package jobs

import (
	"github.com/mitchellh/mapstructure"
)

type Type string

const (
	TypeDeadlineDigest          Type = "deadline_digest"
	TypePendingRequestsReminder Type = "pending_requests_reminder"
)

// Config is the free-form section of a job, decoded by each job into its own struct.
type Config map[string]interface{}

func (c Config) Decode(v interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(c))
}

type Job struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Interval string `mapstructure:"interval" yaml:"interval"`
	Config   Config `mapstructure:"config" yaml:"config"`
}
