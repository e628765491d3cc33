package strapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goto/intake/core/form"
	"github.com/goto/intake/domain"
)

type FormRepository struct {
	client *Client
}

func NewFormRepository(client *Client) *FormRepository {
	return &FormRepository{client: client}
}

func (r *FormRepository) GetRequestBody(ctx context.Context) (*domain.RequestBody, error) {
	record, err := r.client.one(ctx, http.MethodGet, r.client.config.Paths.RequestBody, populateAll(), nil)
	if err != nil {
		return nil, err
	}
	m := &RequestBody{}
	if err := decode(record, m); err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *FormRepository) UpdateRequestBody(ctx context.Context, body *domain.RequestBody) (*domain.RequestBody, error) {
	fields := body.Fields
	if fields == nil {
		fields = domain.FieldSchema{}
	}
	payload := map[string]interface{}{
		"title":   body.Title,
		"info":    body.Info,
		"request": fields,
	}
	record, err := r.client.one(ctx, http.MethodPut, r.client.config.Paths.RequestBody, nil, payload)
	if err != nil {
		return nil, err
	}
	m := &RequestBody{}
	if err := decode(record, m); err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *FormRepository) ListForms(ctx context.Context) ([]*domain.RequestForm, error) {
	records, err := r.client.list(ctx, r.client.config.Paths.RequestForms, populateAll())
	if err != nil {
		return nil, err
	}
	forms := make([]*domain.RequestForm, 0, len(records))
	for _, record := range records {
		m := &RequestForm{}
		if err := decode(record, m); err != nil {
			r.client.logger.Warn(ctx, "skipping undecodable form", "error", err)
			continue
		}
		forms = append(forms, m.ToDomain())
	}
	return forms, nil
}

func (r *FormRepository) GetForm(ctx context.Context, id string) (*domain.RequestForm, error) {
	record, err := r.client.one(ctx, http.MethodGet, r.client.resourcePath(r.client.config.Paths.RequestForms, id), populateAll(), nil)
	if err != nil {
		return nil, mapFormError(err)
	}
	return decodeForm(record)
}

func (r *FormRepository) CreateForm(ctx context.Context, f *domain.RequestForm) (*domain.RequestForm, error) {
	record, err := r.client.one(ctx, http.MethodPost, r.client.config.Paths.RequestForms, nil, formPayload(f))
	if err != nil {
		return nil, err
	}
	return decodeForm(record)
}

func (r *FormRepository) UpdateForm(ctx context.Context, id string, f *domain.RequestForm) (*domain.RequestForm, error) {
	record, err := r.client.one(ctx, http.MethodPut, r.client.resourcePath(r.client.config.Paths.RequestForms, id), nil, formPayload(f))
	if err != nil {
		return nil, mapFormError(err)
	}
	return decodeForm(record)
}

func (r *FormRepository) DeleteForm(ctx context.Context, id string) error {
	if _, err := r.client.do(ctx, http.MethodDelete, r.client.resourcePath(r.client.config.Paths.RequestForms, id), nil, nil); err != nil {
		return mapFormError(err)
	}
	return nil
}

func mapFormError(err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%w: %s", form.ErrFormNotFound, err)
	}
	return err
}

func decodeForm(record map[string]interface{}) (*domain.RequestForm, error) {
	m := &RequestForm{}
	if err := decode(record, m); err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}
