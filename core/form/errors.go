package form

import "errors"

var (
	ErrEmptyDocumentID = errors.New("form document id is required")
	ErrFormNotFound    = errors.New("form not found")
	ErrInvalidForm     = errors.New("invalid form")
	ErrEmptySchema     = errors.New("request body has no fields")
)
