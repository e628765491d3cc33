package otelhttpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/goto/intake/pkg/opentelemetry/otelhttpclient"

// HTTPTransport records a duration histogram for every outgoing call.
type HTTPTransport struct {
	roundTripper http.RoundTripper
	name         string
	duration     metric.Float64Histogram
}

func NewHTTPTransport(baseTransport http.RoundTripper, name string) *HTTPTransport {
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	duration, err := otel.Meter(meterName).Float64Histogram(
		"intake.http.client.duration",
		metric.WithDescription("Duration of outgoing HTTP calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &HTTPTransport{
		roundTripper: baseTransport,
		name:         name,
		duration:     duration,
	}
}

func (tr *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := tr.roundTripper.RoundTrip(req)

	attrs := []attribute.KeyValue{
		attribute.String("client", tr.name),
		attribute.String("method", req.Method),
		attribute.String("host", req.URL.Host),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	} else {
		attrs = append(attrs, attribute.Int("status_code", resp.StatusCode))
	}
	if tr.duration != nil {
		tr.duration.Record(req.Context(), float64(time.Since(start).Milliseconds()), metric.WithAttributes(attrs...))
	}

	return resp, err
}
