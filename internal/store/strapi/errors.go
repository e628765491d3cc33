package strapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrMalformedResponse = errors.New("malformed response from cms")

// ResponseError is returned for any non-2xx reply.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       string
}

func newResponseError(method, path string, statusCode int, body []byte) *ResponseError {
	e := &ResponseError{Method: method, Path: path, StatusCode: statusCode, Body: string(body)}

	var payload struct {
		Error struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		e.Message = payload.Error.Message
	}
	return e
}

func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}
