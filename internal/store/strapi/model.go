package strapi

import (
	"encoding/json"
	"fmt"

	"github.com/mcuadros/go-lookup"
	"github.com/mitchellh/mapstructure"

	"github.com/goto/intake/domain"
)

// Request is a raw CMS request record.
type Request struct {
	ID               int         `mapstructure:"id"`
	DocumentID       string      `mapstructure:"documentId"`
	Name             string      `mapstructure:"name"`
	Email            string      `mapstructure:"email"`
	GlobalID         string      `mapstructure:"global_id"`
	Department       string      `mapstructure:"department"`
	Statuss          string      `mapstructure:"statuss"`
	Status           string      `mapstructure:"status"`
	StartDate        string      `mapstructure:"start_date"`
	LimitDate        string      `mapstructure:"limit_date"`
	EstimatedEndDate string      `mapstructure:"estimated_end_date"`
	Responsible      string      `mapstructure:"responsible"`
	Progress         string      `mapstructure:"progress"`
	CancelInfo       string      `mapstructure:"cancel_info"`
	Details          interface{} `mapstructure:"request"`
	CreatedAt        string      `mapstructure:"createdAt"`
	UpdatedAt        string      `mapstructure:"updatedAt"`
}

func (m *Request) ToDomain() *domain.Request {
	raw := m.Statuss
	if raw == "" {
		raw = m.Status
	}
	status, _ := domain.ParseRequestStatus(raw)

	documentID := m.DocumentID
	if documentID == "" && m.ID != 0 {
		documentID = fmt.Sprint(m.ID)
	}

	return &domain.Request{
		DocumentID:       documentID,
		Name:             m.Name,
		Email:            m.Email,
		GlobalID:         m.GlobalID,
		Department:       m.Department,
		Status:           status,
		RawStatus:        raw,
		StartDate:        m.StartDate,
		LimitDate:        m.LimitDate,
		EstimatedEndDate: m.EstimatedEndDate,
		Responsible:      m.Responsible,
		Progress:         m.Progress,
		CancelInfo:       m.CancelInfo,
		Details:          detailsMap(m.Details),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// RequestBody is the raw single type holding the general form.
type RequestBody struct {
	Title  string             `mapstructure:"title"`
	Info   string             `mapstructure:"info"`
	Fields domain.FieldSchema `mapstructure:"request"`
}

func (m *RequestBody) ToDomain() *domain.RequestBody {
	return &domain.RequestBody{Title: m.Title, Info: m.Info, Fields: m.Fields}
}

// RequestForm is a raw named form record.
type RequestForm struct {
	ID         int                `mapstructure:"id"`
	DocumentID string             `mapstructure:"documentId"`
	Title      string             `mapstructure:"title"`
	Info       string             `mapstructure:"info"`
	Fields     domain.FieldSchema `mapstructure:"request"`
	CreatedAt  string             `mapstructure:"createdAt"`
	UpdatedAt  string             `mapstructure:"updatedAt"`
}

func (m *RequestForm) ToDomain() *domain.RequestForm {
	documentID := m.DocumentID
	if documentID == "" && m.ID != 0 {
		documentID = fmt.Sprint(m.ID)
	}
	fields := m.Fields
	if fields == nil {
		fields = domain.FieldSchema{}
	}
	return &domain.RequestForm{
		DocumentID: documentID,
		Title:      m.Title,
		Info:       m.Info,
		Fields:     fields,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// decode reads a flat (v5) or {id, attributes} (v4) record into out.
func decode(record map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(flatten(record)); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return nil
}

func flatten(record map[string]interface{}) map[string]interface{} {
	v, err := lookup.LookupString(record, "attributes")
	if err != nil || !v.IsValid() {
		return record
	}
	attrs, ok := v.Interface().(map[string]interface{})
	if !ok {
		return record
	}

	out := make(map[string]interface{}, len(attrs)+2)
	for k, val := range attrs {
		out[k] = val
	}
	for _, key := range []string{"id", "documentId"} {
		if _, ok := out[key]; !ok {
			if val, ok := record[key]; ok {
				out[key] = val
			}
		}
	}
	return out
}

// detailsMap accepts the details either as an object or as a JSON encoded string.
func detailsMap(v interface{}) map[string]interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return val
	case string:
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(val), &m); err == nil {
			return m
		}
	}
	return map[string]interface{}{}
}

func requestPayload(r *domain.Request, statusAttribute string) map[string]interface{} {
	payload := map[string]interface{}{
		"name":          r.Name,
		"email":         r.Email,
		statusAttribute: r.Status.Label(),
		"request":       r.Details,
	}
	optional := map[string]string{
		"global_id":          r.GlobalID,
		"department":         r.Department,
		"start_date":         r.StartDate,
		"limit_date":         r.LimitDate,
		"estimated_end_date": r.EstimatedEndDate,
		"responsible":        r.Responsible,
		"progress":           r.Progress,
		"cancel_info":        r.CancelInfo,
	}
	for k, v := range optional {
		if v != "" {
			payload[k] = v
		}
	}
	return payload
}

// patchPayload only carries the attributes the patch sets, so the CMS keeps the rest.
func patchPayload(p domain.RequestPatch, statusAttribute string) map[string]interface{} {
	payload := map[string]interface{}{}
	if p.Status != nil {
		payload[statusAttribute] = p.Status.Label()
	}
	if p.Responsible != nil {
		payload["responsible"] = *p.Responsible
	}
	if p.Progress != nil {
		payload["progress"] = *p.Progress
	}
	if p.CancelInfo != nil {
		payload["cancel_info"] = *p.CancelInfo
	}
	if p.StartDate != nil {
		payload["start_date"] = domain.FormatTimestamp(*p.StartDate)
	}
	if p.EstimatedEndDate != nil {
		payload["estimated_end_date"] = domain.FormatTimestamp(*p.EstimatedEndDate)
	}
	return payload
}

func formPayload(f *domain.RequestForm) map[string]interface{} {
	fields := f.Fields
	if fields == nil {
		fields = domain.FieldSchema{}
	}
	return map[string]interface{}{
		"title":   f.Title,
		"info":    f.Info,
		"request": fields,
	}
}
