package strapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goto/intake/core/request"
	"github.com/goto/intake/domain"
)

type RequestRepository struct {
	client *Client
}

func NewRequestRepository(client *Client) *RequestRepository {
	return &RequestRepository{client: client}
}

func (r *RequestRepository) List(ctx context.Context) ([]*domain.Request, error) {
	records, err := r.client.list(ctx, r.client.config.Paths.Requests, populateAll())
	if err != nil {
		return nil, err
	}

	requests := make([]*domain.Request, 0, len(records))
	for _, record := range records {
		m := &Request{}
		if err := decode(record, m); err != nil {
			r.client.logger.Warn(ctx, "skipping undecodable request", "error", err)
			continue
		}
		requests = append(requests, m.ToDomain())
	}
	return requests, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	record, err := r.client.one(ctx, http.MethodGet, r.client.resourcePath(r.client.config.Paths.Requests, id), populateAll(), nil)
	if err != nil {
		return nil, r.mapError(err)
	}
	return decodeRequest(record)
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	payload := requestPayload(req, r.client.config.StatusAttribute)
	record, err := r.client.one(ctx, http.MethodPost, r.client.config.Paths.Requests, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRequest(record)
}

// Update sends a partial PUT; the CMS merges the given attributes into the record.
func (r *RequestRepository) Update(ctx context.Context, id string, patch domain.RequestPatch) (*domain.Request, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("empty update for request %q", id)
	}
	payload := patchPayload(patch, r.client.config.StatusAttribute)
	record, err := r.client.one(ctx, http.MethodPut, r.client.resourcePath(r.client.config.Paths.Requests, id), nil, payload)
	if err != nil {
		return nil, r.mapError(err)
	}
	return decodeRequest(record)
}

func (r *RequestRepository) mapError(err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%w: %s", request.ErrRequestNotFound, err)
	}
	return err
}

func decodeRequest(record map[string]interface{}) (*domain.Request, error) {
	m := &Request{}
	if err := decode(record, m); err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}
