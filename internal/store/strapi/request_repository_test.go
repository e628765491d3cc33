package strapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goto/intake/core/request"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/internal/store/strapi"
	pkghttp "github.com/goto/intake/pkg/http"
	"github.com/goto/intake/pkg/log"
)

type recordedCall struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   map[string]interface{}
}

// fakeCMS serves canned replies keyed by "METHOD /path" and records every call.
type fakeCMS struct {
	mu      sync.Mutex
	calls   []recordedCall
	replies map[string]func(r *http.Request) (int, string)
}

func (f *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone(), Body: body})
	reply, ok := f.replies[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"data":null,"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`))
		return
	}
	status, resp := reply(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(resp))
}

func (f *fakeCMS) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeCMS) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func fixed(status int, body string) func(*http.Request) (int, string) {
	return func(*http.Request) (int, string) { return status, body }
}

type RequestRepositoryTestSuite struct {
	suite.Suite
	cms        *fakeCMS
	server     *httptest.Server
	repository *strapi.RequestRepository
}

func TestRequestRepository(t *testing.T) {
	suite.Run(t, new(RequestRepositoryTestSuite))
}

func (s *RequestRepositoryTestSuite) SetupTest() {
	s.cms = &fakeCMS{replies: map[string]func(*http.Request) (int, string){}}
	s.server = httptest.NewServer(s.cms)

	client, err := strapi.NewClient(&strapi.Config{
		BaseURL:  s.server.URL,
		Auth:     &pkghttp.AuthConfig{Type: "bearer", Token: "cms-token"},
		PageSize: 2,
	}, log.NewNoop())
	s.Require().NoError(err)
	s.repository = strapi.NewRequestRepository(client)
}

func (s *RequestRepositoryTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *RequestRepositoryTestSuite) TestList() {
	s.Run("should read every page and both record shapes", func() {
		s.SetupTest()
		s.cms.replies["GET /api/requests"] = func(r *http.Request) (int, string) {
			if r.URL.Query().Get("pagination[page]") == "1" {
				return http.StatusOK, `{
					"data": [
						{"id": 1, "documentId": "a", "name": "Jane", "statuss": "Pending", "limit_date": "2024-01-20", "request": {"site": "HQ"}},
						{"id": 2, "attributes": {"documentId": "b", "name": "John", "statuss": "In Process", "responsible": "Alice", "start_date": null}}
					],
					"meta": {"pagination": {"page": 1, "pageSize": 2, "pageCount": 2, "total": 3}}
				}`
			}
			return http.StatusOK, `{
				"data": [{"id": 3, "documentId": "c", "status": "canceled", "cancel_info": "duplicate request"}],
				"meta": {"pagination": {"page": 2, "pageSize": 2, "pageCount": 2, "total": 3}}
			}`
		}

		requests, err := s.repository.List(context.Background())

		s.Require().NoError(err)
		s.Require().Len(requests, 3)
		s.Equal(2, s.cms.count())

		s.Equal("a", requests[0].DocumentID)
		s.Equal(domain.RequestStatusPending, requests[0].Status)
		s.Equal("HQ", requests[0].Details["site"])
		s.Equal("2024-01-20", requests[0].LimitDate)

		s.Equal("b", requests[1].DocumentID)
		s.Equal(domain.RequestStatusInProcess, requests[1].Status)
		s.Equal("Alice", requests[1].Responsible)
		s.Empty(requests[1].StartDate)

		s.Equal(domain.RequestStatusCancelled, requests[2].Status)
		s.Equal("duplicate request", requests[2].CancelInfo)

		call := s.cms.lastCall()
		s.Equal("Bearer cms-token", call.Header.Get("Authorization"))
		s.Equal("*", call.Query["populate"][0])
		s.NotEmpty(call.Header.Get(pkghttp.HeaderRequestID))
	})

	s.Run("should keep unknown statuses visible", func() {
		s.SetupTest()
		s.cms.replies["GET /api/requests"] = fixed(http.StatusOK, `{"data": [{"documentId": "x", "statuss": "Archived"}]}`)

		requests, err := s.repository.List(context.Background())

		s.Require().NoError(err)
		s.Require().Len(requests, 1)
		s.Equal(domain.RequestStatusUnknown, requests[0].Status)
		s.Equal("Archived", requests[0].RawStatus)
	})

	s.Run("should return the cms error", func() {
		s.SetupTest()
		s.cms.replies["GET /api/requests"] = fixed(http.StatusForbidden, `{"data":null,"error":{"status":403,"name":"ForbiddenError","message":"Forbidden"}}`)

		_, err := s.repository.List(context.Background())

		var re *strapi.ResponseError
		s.Require().ErrorAs(err, &re)
		s.Equal(http.StatusForbidden, re.StatusCode)
		s.Equal("Forbidden", re.Message)
	})
}

func (s *RequestRepositoryTestSuite) TestGetByID() {
	s.Run("should map 404 to request not found", func() {
		s.SetupTest()
		_, err := s.repository.GetByID(context.Background(), "missing")
		s.ErrorIs(err, request.ErrRequestNotFound)
	})

	s.Run("should decode a single record", func() {
		s.SetupTest()
		s.cms.replies["GET /api/requests/a"] = fixed(http.StatusOK, `{"data": {"documentId": "a", "statuss": "Approved", "request": "{\"site\":\"HQ\"}"}}`)

		r, err := s.repository.GetByID(context.Background(), "a")

		s.Require().NoError(err)
		s.Equal(domain.RequestStatusApproved, r.Status)
		s.Equal("HQ", r.Details["site"])
	})
}

func (s *RequestRepositoryTestSuite) TestUpdate() {
	s.Run("should send only the patched attributes in one put", func() {
		s.SetupTest()
		s.cms.replies["PUT /api/requests/a"] = fixed(http.StatusOK, `{"data": {"documentId": "a", "statuss": "Approved", "responsible": "Alice", "start_date": "2024-01-08T09:00:00.000Z", "estimated_end_date": "2024-01-08T11:00:00.000Z"}}`)

		approved := domain.RequestStatusApproved
		responsible := "Alice"
		start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
		patch := domain.RequestPatch{Status: &approved, Responsible: &responsible}.
			WithSchedule(&domain.Schedule{Start: start, End: start.Add(2 * time.Hour)})

		r, err := s.repository.Update(context.Background(), "a", patch)

		s.Require().NoError(err)
		s.Equal(domain.RequestStatusApproved, r.Status)
		s.Equal(1, s.cms.count())

		call := s.cms.lastCall()
		s.Equal(http.MethodPut, call.Method)
		s.Equal(map[string]interface{}{
			"data": map[string]interface{}{
				"statuss":            "Approved",
				"responsible":        "Alice",
				"start_date":         "2024-01-08T09:00:00Z",
				"estimated_end_date": "2024-01-08T11:00:00Z",
			},
		}, call.Body)
	})

	s.Run("should not retry a failed write", func() {
		s.cms = &fakeCMS{replies: map[string]func(*http.Request) (int, string){
			"PUT /api/requests/a": fixed(http.StatusServiceUnavailable, `{}`),
		}}
		s.server.Close()
		s.server = httptest.NewServer(s.cms)
		client, err := strapi.NewClient(&strapi.Config{BaseURL: s.server.URL, RetryCount: 3}, log.NewNoop())
		s.Require().NoError(err)
		s.repository = strapi.NewRequestRepository(client)

		cancelled := domain.RequestStatusCancelled
		_, err = s.repository.Update(context.Background(), "a", domain.RequestPatch{Status: &cancelled})

		s.Error(err)
		s.Equal(1, s.cms.count())
	})

	s.Run("should map 404 to request not found", func() {
		s.SetupTest()
		completed := domain.RequestStatusCompleted
		_, err := s.repository.Update(context.Background(), "gone", domain.RequestPatch{Status: &completed})
		s.ErrorIs(err, request.ErrRequestNotFound)
	})

	s.Run("should refuse an empty patch", func() {
		s.SetupTest()
		_, err := s.repository.Update(context.Background(), "a", domain.RequestPatch{})
		s.Error(err)
		s.Equal(0, s.cms.count())
	})
}

func (s *RequestRepositoryTestSuite) TestCreate() {
	s.SetupTest()
	s.cms.replies["POST /api/requests"] = func(r *http.Request) (int, string) {
		return http.StatusCreated, `{"data": {"id": 9, "documentId": "new-1", "name": "Jane", "email": "jane@example.com", "statuss": "Pending", "request": {"site": "HQ"}}}`
	}

	created, err := s.repository.Create(context.Background(), &domain.Request{
		Name:      "Jane",
		Email:     "jane@example.com",
		Status:    domain.RequestStatusPending,
		StartDate: "2024-01-05T10:00:00Z",
		Details:   map[string]interface{}{"site": "HQ"},
	})

	s.Require().NoError(err)
	s.Equal("new-1", created.DocumentID)

	data := s.cms.lastCall().Body["data"].(map[string]interface{})
	s.Equal("Pending", data["statuss"])
	s.Equal("2024-01-05T10:00:00Z", data["start_date"])
	s.NotContains(data, "responsible")
	s.Equal(map[string]interface{}{"site": "HQ"}, data["request"])
}

func TestNewClient(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg := &strapi.Config{}
		_, err := strapi.NewClient(cfg, log.NewNoop())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:1337", cfg.BaseURL)
		assert.Equal(t, "/api", cfg.APIPrefix)
		assert.Equal(t, "/requests", cfg.Paths.Requests)
		assert.Equal(t, "statuss", cfg.StatusAttribute)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
	})

	t.Run("should reject an unknown status attribute", func(t *testing.T) {
		_, err := strapi.NewClient(&strapi.Config{StatusAttribute: "estado"}, log.NewNoop())
		assert.Error(t, err)
	})
}
