package http

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryableTransport retries idempotent requests on transport errors and gateway
// failures. Writes are sent exactly once.
type RetryableTransport struct {
	Transport  http.RoundTripper
	RetryCount int
	// Backoff defaults to 1s, 2s, 4s...
	Backoff func(retries int) time.Duration
}

func (t *RetryableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isIdempotent(req.Method) || t.RetryCount <= 0 {
		return t.Transport.RoundTrip(req)
	}

	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading body: %w", err)
		}
	}

	wait := t.Backoff
	if wait == nil {
		wait = backoff
	}

	var resp *http.Response
	var err error
	retries := -1
	for (retries == -1 || shouldRetry(err, resp)) && retries < t.RetryCount {
		if retries > -1 {
			// consume any response to reuse the connection.
			drainBody(resp)
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(wait(retries)):
			}
		}

		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
		resp, err = t.Transport.RoundTrip(req)

		retries++
	}

	return resp, err
}

func isIdempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func backoff(retries int) time.Duration {
	return time.Duration(math.Pow(2, float64(retries))) * time.Second
}

func shouldRetry(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}

	return resp.StatusCode == http.StatusBadGateway ||
		resp.StatusCode == http.StatusServiceUnavailable ||
		resp.StatusCode == http.StatusGatewayTimeout
}

func drainBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
