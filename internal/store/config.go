package store

import (
	"fmt"
	"net/url"
)

// Config is the optional Postgres database backing the audit trail.
type Config struct {
	Host     string `mapstructure:"host" yaml:"host"`
	User     string `mapstructure:"user" yaml:"user" default:"postgres"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name" yaml:"name" default:"intake"`
	Port     string `mapstructure:"port" yaml:"port" default:"5432"`
	SslMode  string `mapstructure:"sslmode" yaml:"sslmode" default:"disable" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level" default:"silent" validate:"omitempty,oneof=silent error warn info"`
}

// Enabled reports whether a database was configured at all.
func (c Config) Enabled() bool {
	return c.Host != ""
}

func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SslMode)
	u.RawQuery = q.Encode()
	return u.String()
}
