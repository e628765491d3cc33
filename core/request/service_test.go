package request_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goto/intake/core/request"
	"github.com/goto/intake/core/request/mocks"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/audit"
	"github.com/goto/intake/pkg/log"
)

type ServiceTestSuite struct {
	suite.Suite
	mockRepository  *mocks.Repository
	mockAuditLogger *mocks.AuditLogger
	service         *request.Service
	now             time.Time
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.mockRepository = new(mocks.Repository)
	s.mockAuditLogger = new(mocks.AuditLogger)
	s.mockAuditLogger.EXPECT().Log(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	hours := domain.DefaultWorkingHours()
	hours.Timezone = "UTC"

	s.service = request.NewService(request.ServiceDeps{
		Repository:   s.mockRepository,
		WorkingHours: hours,
		Timeout:      time.Second,
		Logger:       log.NewNoop(),
		AuditLogger:  s.mockAuditLogger,
	})
	s.now = time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)
	s.service.TimeNow = func() time.Time { return s.now }
}

// seed loads records into the cache through the remote list.
func (s *ServiceTestSuite) seed(records ...*domain.Request) {
	s.mockRepository.EXPECT().List(mock.Anything).Return(records, nil).Once()
	_, err := s.service.Load(context.Background())
	s.Require().NoError(err)
}

// echoUpdates makes the remote store confirm every patch against its current copy.
func (s *ServiceTestSuite) echoUpdates(records ...*domain.Request) {
	store := map[string]*domain.Request{}
	for _, r := range records {
		store[r.DocumentID] = r.Clone()
	}
	var mu sync.Mutex
	s.mockRepository.EXPECT().Update(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id string, patch domain.RequestPatch) (*domain.Request, error) {
			mu.Lock()
			defer mu.Unlock()
			updated := patch.ApplyTo(store[id])
			store[id] = updated
			return updated.Clone(), nil
		})
}

func newRequest(id string, status domain.RequestStatus) *domain.Request {
	return &domain.Request{
		DocumentID: id,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Status:     status,
		RawStatus:  status.Label(),
		LimitDate:  "2024-01-20",
	}
}

func monday(hour, minute int) time.Time {
	return time.Date(2024, time.January, 8, hour, minute, 0, 0, time.UTC)
}

func (s *ServiceTestSuite) TestLoad() {
	s.Run("should replace the cache with the remote list", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusPending), newRequest("b", domain.RequestStatusApproved))

		records := s.service.Records()
		s.Len(records, 2)
		s.Equal("a", records[0].DocumentID)
		s.Equal("b", records[1].DocumentID)
	})

	s.Run("should keep the cache when the remote list fails", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusPending))

		s.mockRepository.EXPECT().List(mock.Anything).Return(nil, errors.New("connection refused")).Once()
		_, err := s.service.Load(context.Background())

		s.ErrorIs(err, request.ErrRemoteCall)
		s.Len(s.service.Records(), 1)
	})
}

func (s *ServiceTestSuite) TestGet() {
	s.Run("should return error if id is empty", func() {
		s.SetupTest()
		_, err := s.service.Get(context.Background(), "")
		s.ErrorIs(err, request.ErrEmptyDocumentID)
	})

	s.Run("should surface not found as a remote failure", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetByID(mock.Anything, "missing").Return(nil, request.ErrRequestNotFound).Once()

		_, err := s.service.Get(context.Background(), "missing")
		s.ErrorIs(err, request.ErrRemoteCall)
		s.ErrorIs(err, request.ErrRequestNotFound)
	})

	s.Run("should cache the fetched record", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetByID(mock.Anything, "a").Return(newRequest("a", domain.RequestStatusApproved), nil).Once()

		r, err := s.service.Get(context.Background(), "a")
		s.NoError(err)
		s.Equal(domain.RequestStatusApproved, r.Status)
		s.Len(s.service.Records(), 1)
	})
}

func (s *ServiceTestSuite) TestAdvance() {
	s.Run("should reject terminal requests without calling the remote store", func() {
		for _, status := range []domain.RequestStatus{domain.RequestStatusCompleted, domain.RequestStatusCancelled} {
			s.SetupTest()
			s.seed(newRequest("a", status))

			_, err := s.service.Advance(context.Background(), "a")

			s.ErrorIs(err, request.ErrInvalidTransition)
			s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
			s.mockRepository.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
		}
	})

	s.Run("should read an uncached terminal record once and never write it", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().GetByID(mock.Anything, "z").Return(newRequest("z", domain.RequestStatusCompleted), nil).Once()

		_, err := s.service.Advance(context.Background(), "z")
		s.ErrorIs(err, request.ErrInvalidTransition)

		_, err = s.service.Cancel(context.Background(), "z", "too late")
		s.ErrorIs(err, request.ErrInvalidTransition)

		s.mockRepository.AssertNumberOfCalls(s.T(), "GetByID", 1)
		s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should reject pending requests since they need an approval", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusPending))

		_, err := s.service.Advance(context.Background(), "a")

		s.ErrorIs(err, request.ErrInvalidTransition)
		s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should move approved requests to in process", func() {
		s.SetupTest()
		r := newRequest("a", domain.RequestStatusApproved)
		s.seed(r)
		s.echoUpdates(r)

		updated, err := s.service.Advance(context.Background(), "a")

		s.NoError(err)
		s.Equal(domain.RequestStatusInProcess, updated.Status)
		s.Equal(domain.RequestStatusInProcess, s.service.Records()[0].Status)
		s.mockRepository.AssertCalled(s.T(), "Update", mock.Anything, "a", mock.MatchedBy(func(p domain.RequestPatch) bool {
			return p.Status != nil && *p.Status == domain.RequestStatusInProcess && p.Responsible == nil
		}))
	})

	s.Run("should leave the cache untouched when the remote store fails", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusInProcess))
		s.mockRepository.EXPECT().Update(mock.Anything, "a", mock.Anything).Return(nil, errors.New("502 bad gateway")).Once()

		_, err := s.service.Advance(context.Background(), "a")

		s.ErrorIs(err, request.ErrRemoteCall)
		s.Equal(domain.RequestStatusInProcess, s.service.Records()[0].Status)
	})

	s.Run("should report a timeout when the remote store does not answer", func() {
		s.mockRepository = new(mocks.Repository)
		hours := domain.DefaultWorkingHours()
		hours.Timezone = "UTC"
		s.service = request.NewService(request.ServiceDeps{
			Repository:   s.mockRepository,
			WorkingHours: hours,
			Timeout:      20 * time.Millisecond,
			Logger:       log.NewNoop(),
		})
		s.seed(newRequest("a", domain.RequestStatusApproved))
		s.mockRepository.EXPECT().Update(mock.Anything, "a", mock.Anything).
			RunAndReturn(func(ctx context.Context, _ string, _ domain.RequestPatch) (*domain.Request, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}).Once()

		_, err := s.service.Advance(context.Background(), "a")

		s.ErrorIs(err, request.ErrRemoteCall)
		s.ErrorIs(err, request.ErrRemoteTimeout)
		s.Equal(domain.RequestStatusApproved, s.service.Records()[0].Status)
		s.False(s.service.IsBusy("a"))
	})

	s.Run("should reject a second transition while one is in flight", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusApproved))

		entered := make(chan struct{})
		unblock := make(chan struct{})
		s.mockRepository.EXPECT().Update(mock.Anything, "a", mock.Anything).
			RunAndReturn(func(_ context.Context, _ string, p domain.RequestPatch) (*domain.Request, error) {
				close(entered)
				<-unblock
				return p.ApplyTo(newRequest("a", domain.RequestStatusApproved)), nil
			}).Once()

		done := make(chan error, 1)
		go func() {
			_, err := s.service.Advance(context.Background(), "a")
			done <- err
		}()
		<-entered

		s.True(s.service.IsBusy("a"))
		_, err := s.service.Cancel(context.Background(), "a", "duplicate request")
		s.ErrorIs(err, request.ErrTransitionInFlight)

		close(unblock)
		s.NoError(<-done)
		s.False(s.service.IsBusy("a"))
		s.Equal(domain.RequestStatusInProcess, s.service.Records()[0].Status)
	})
}

func (s *ServiceTestSuite) TestApprove() {
	validSchedule := domain.Schedule{Start: monday(9, 0), End: monday(11, 0)}

	s.Run("should reject a weekend schedule without calling the remote store", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusPending))

		saturday := time.Date(2024, time.January, 6, 9, 0, 0, 0, time.UTC)
		_, err := s.service.Approve(context.Background(), "a", "Alice", domain.Schedule{Start: saturday, End: saturday.Add(2 * time.Hour)})

		s.ErrorIs(err, request.ErrValidation)
		s.ErrorIs(err, domain.ErrScheduleNotWorkingDay)
		s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should reject schedules outside working hours", func() {
		testCases := []struct {
			name     string
			schedule domain.Schedule
		}{
			{"starts before opening", domain.Schedule{Start: monday(7, 30), End: monday(9, 0)}},
			{"ends after closing", domain.Schedule{Start: monday(15, 0), End: monday(17, 30)}},
			{"friday ends after early closing", domain.Schedule{
				Start: time.Date(2024, time.January, 12, 15, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.January, 12, 16, 30, 0, 0, time.UTC),
			}},
			{"end before start", domain.Schedule{Start: monday(11, 0), End: monday(9, 0)}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.SetupTest()
				s.seed(newRequest("a", domain.RequestStatusPending))

				_, err := s.service.Approve(context.Background(), "a", "Alice", tc.schedule)

				s.ErrorIs(err, request.ErrValidation)
				s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	s.Run("should require a responsible", func() {
		s.SetupTest()
		_, err := s.service.Approve(context.Background(), "a", "  ", validSchedule)
		s.ErrorIs(err, request.ErrValidation)
	})

	s.Run("should only approve pending requests", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusApproved))

		_, err := s.service.Approve(context.Background(), "a", "Alice", validSchedule)
		s.ErrorIs(err, request.ErrInvalidTransition)
	})

	s.Run("should send status, responsible and schedule in one update", func() {
		s.SetupTest()
		r := newRequest("a", domain.RequestStatusPending)
		s.seed(r)
		s.echoUpdates(r)

		updated, err := s.service.Approve(context.Background(), "a", "Alice", validSchedule)

		s.NoError(err)
		s.Equal(domain.RequestStatusApproved, updated.Status)
		s.Equal("Alice", updated.Responsible)
		s.Equal("2024-01-08T09:00:00Z", updated.StartDate)
		s.Equal("2024-01-08T11:00:00Z", updated.EstimatedEndDate)
		s.mockRepository.AssertNumberOfCalls(s.T(), "Update", 1)
		s.mockRepository.AssertCalled(s.T(), "Update", mock.Anything, "a", mock.MatchedBy(func(p domain.RequestPatch) bool {
			return p.Status != nil && *p.Status == domain.RequestStatusApproved &&
				p.Responsible != nil && *p.Responsible == "Alice" &&
				p.StartDate != nil && p.StartDate.Equal(validSchedule.Start) &&
				p.EstimatedEndDate != nil && p.EstimatedEndDate.Equal(validSchedule.End)
		}))
	})
}

func (s *ServiceTestSuite) TestCancel() {
	s.Run("should require a reason", func() {
		s.SetupTest()
		_, err := s.service.Cancel(context.Background(), "a", "")
		s.ErrorIs(err, request.ErrValidation)
	})

	s.Run("should reject completed requests", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusCompleted))

		_, err := s.service.Cancel(context.Background(), "a", "duplicate request")
		s.ErrorIs(err, request.ErrInvalidTransition)
		s.mockRepository.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("should cancel an active request with its reason", func() {
		s.SetupTest()
		r := newRequest("a", domain.RequestStatusInProcess)
		s.seed(r)
		s.echoUpdates(r)

		updated, err := s.service.Cancel(context.Background(), "a", "duplicate request")

		s.NoError(err)
		s.Equal(domain.RequestStatusCancelled, updated.Status)
		s.Equal("duplicate request", updated.CancelInfo)

		_, err = s.service.Advance(context.Background(), "a")
		s.ErrorIs(err, request.ErrInvalidTransition)
	})
}

func (s *ServiceTestSuite) TestCancel_FromApproved() {
	s.SetupTest()
	r := newRequest("a", domain.RequestStatusApproved)
	s.seed(r)
	s.echoUpdates(r)
	ctx := context.Background()

	cancelled, err := s.service.Cancel(ctx, "a", "requester withdrew")
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusCancelled, cancelled.Status)
	s.Equal("requester withdrew", cancelled.CancelInfo)

	_, err = s.service.Advance(ctx, "a")
	s.ErrorIs(err, request.ErrInvalidTransition)

	_, err = s.service.Cancel(ctx, "a", "requester withdrew again")
	s.ErrorIs(err, request.ErrInvalidTransition)

	s.mockRepository.AssertNumberOfCalls(s.T(), "Update", 1)
	s.Equal(domain.RequestStatusCancelled, s.service.Records()[0].Status)
}

func (s *ServiceTestSuite) TestUpdateProgress() {
	progress := "waiting for parts"

	s.Run("should reject an empty update", func() {
		s.SetupTest()
		_, err := s.service.UpdateProgress(context.Background(), "a", domain.RequestUpdate{})
		s.ErrorIs(err, request.ErrValidation)
	})

	s.Run("should reject terminal requests", func() {
		s.SetupTest()
		s.seed(newRequest("a", domain.RequestStatusCompleted))

		_, err := s.service.UpdateProgress(context.Background(), "a", domain.RequestUpdate{Progress: &progress})
		s.ErrorIs(err, request.ErrInvalidTransition)
	})

	s.Run("should keep the status while updating progress", func() {
		s.SetupTest()
		r := newRequest("a", domain.RequestStatusInProcess)
		s.seed(r)
		s.echoUpdates(r)

		updated, err := s.service.UpdateProgress(context.Background(), "a", domain.RequestUpdate{Progress: &progress})

		s.NoError(err)
		s.Equal(domain.RequestStatusInProcess, updated.Status)
		s.Equal(progress, updated.Progress)
		s.mockRepository.AssertCalled(s.T(), "Update", mock.Anything, "a", mock.MatchedBy(func(p domain.RequestPatch) bool {
			return p.Status == nil && p.Progress != nil
		}))
	})
}

func (s *ServiceTestSuite) TestCreate() {
	schema := domain.FieldSchema{
		{Name: "site", Label: "Site", Type: domain.FieldTypeText},
		{Name: "kind", Label: "Kind", Type: domain.FieldTypeSelect, Options: []string{"repair", "install"}},
	}
	validSubmission := domain.RequestSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Details: map[string]interface{}{"site": "HQ", "kind": "repair"},
	}

	s.Run("should reject an invalid email", func() {
		s.SetupTest()
		sub := validSubmission
		sub.Email = "not-an-email"

		_, err := s.service.Create(context.Background(), sub, schema)
		s.ErrorIs(err, request.ErrValidation)
		s.mockRepository.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	})

	s.Run("should reject missing form fields", func() {
		s.SetupTest()
		sub := validSubmission
		sub.Details = map[string]interface{}{"kind": "repair"}

		_, err := s.service.Create(context.Background(), sub, schema)
		s.ErrorIs(err, request.ErrValidation)
		s.ErrorIs(err, domain.ErrMissingRequiredField)
	})

	s.Run("should store new requests as pending", func() {
		s.SetupTest()
		s.mockRepository.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Request")).
			RunAndReturn(func(_ context.Context, r *domain.Request) (*domain.Request, error) {
				created := r.Clone()
				created.DocumentID = "new-1"
				return created, nil
			}).Once()

		created, err := s.service.Create(context.Background(), validSubmission, schema)

		s.NoError(err)
		s.Equal("new-1", created.DocumentID)
		s.Equal(domain.RequestStatusPending, created.Status)
		s.Equal(domain.FormatTimestamp(s.now), created.StartDate)
		s.Len(s.service.Records(), 1)
	})
}

func (s *ServiceTestSuite) TestWorkflow() {
	s.SetupTest()
	r := newRequest("a", domain.RequestStatusPending)
	s.seed(r)
	s.echoUpdates(r)
	ctx := context.Background()

	approved, err := s.service.Approve(ctx, "a", "Alice", domain.Schedule{Start: monday(9, 0), End: monday(11, 0)})
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusApproved, approved.Status)

	inProcess, err := s.service.Advance(ctx, "a")
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusInProcess, inProcess.Status)

	completed, err := s.service.Advance(ctx, "a")
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusCompleted, completed.Status)
	s.Equal("Alice", completed.Responsible)

	_, err = s.service.Advance(ctx, "a")
	s.ErrorIs(err, request.ErrInvalidTransition)
	s.mockRepository.AssertNumberOfCalls(s.T(), "Update", 3)

	views := s.service.Views(s.now)
	s.Len(views, 1)
	s.Equal(domain.BucketNormal, views[0].Bucket)
	s.NotNil(views[0].DaysRemaining)
	s.Equal(15, *views[0].DaysRemaining)
}

func (s *ServiceTestSuite) TestAudit() {
	s.Run("should record the transition with actor and changelog", func() {
		s.SetupTest()
		auditLogger := new(mocks.AuditLogger)
		s.service = request.NewService(request.ServiceDeps{
			Repository:   s.mockRepository,
			WorkingHours: domain.WorkingHours{StartHour: 8, WeekdayEndHour: 17, FridayEndHour: 16, Timezone: "UTC"},
			Logger:       log.NewNoop(),
			AuditLogger:  auditLogger,
		})

		r := newRequest("a", domain.RequestStatusApproved)
		s.seed(r)
		s.echoUpdates(r)

		var recorded map[string]interface{}
		auditLogger.EXPECT().Log(mock.Anything, request.AuditKeyAdvance, mock.Anything).
			Run(func(_ context.Context, _ string, data interface{}) {
				recorded = data.(map[string]interface{})
			}).Return(nil).Once()

		ctx := audit.WithActor(context.Background(), "ops@example.com")
		_, err := s.service.Advance(ctx, "a")
		s.Require().NoError(err)

		s.service.WaitAudits()
		auditLogger.AssertExpectations(s.T())
		s.Equal("a", recorded["document_id"])
		s.Equal(domain.RequestStatusInProcess, recorded["status"])
		s.Equal(domain.RequestStatusApproved, recorded["previous_status"])
		s.Equal("ops@example.com", recorded["actor"])
		s.NotEmpty(recorded["changelog"])
	})
}
