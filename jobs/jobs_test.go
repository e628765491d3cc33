package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/jobs/mocks"
	"github.com/goto/intake/pkg/log"
)

type HandlerTestSuite struct {
	suite.Suite
	mockRequestService *mocks.RequestService
	handler            *handler
	now                time.Time
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	s.mockRequestService = new(mocks.RequestService)
	s.handler = NewHandler(log.NewNoop(), s.mockRequestService)
	s.handler.TimeNow = func() time.Time { return s.now }
}

func (s *HandlerTestSuite) records() []*domain.Request {
	return []*domain.Request{
		{DocumentID: "overdue", Status: domain.RequestStatusApproved, Department: "it", StartDate: "2024-01-01T09:00:00Z", LimitDate: "2024-01-08"},
		{DocumentID: "today", Status: domain.RequestStatusPending, Department: "hr", StartDate: "2024-01-09T09:00:00Z", LimitDate: "2024-01-10"},
		{DocumentID: "conflict", Status: domain.RequestStatusInProcess, Department: "it", LimitDate: "2024-01-20", EstimatedEndDate: "2024-01-25T10:00:00Z"},
		{DocumentID: "later", Status: domain.RequestStatusPending, Department: "it", StartDate: "2024-01-02T09:00:00Z", LimitDate: "2024-01-30"},
		{DocumentID: "done", Status: domain.RequestStatusCompleted, LimitDate: "2024-01-01"},
		{DocumentID: "fresh", Status: domain.RequestStatusPending, Department: "hr", StartDate: "2024-01-10T11:00:00Z"},
	}
}

func (s *HandlerTestSuite) views() []*domain.RequestView {
	return projection.NewProjector(time.UTC).Project(s.records(), s.now)
}

func (s *HandlerTestSuite) expectLoad() {
	s.mockRequestService.EXPECT().Load(mock.Anything).Return(s.records(), nil).Once()
	s.mockRequestService.EXPECT().Views(s.now).Return(s.views()).Once()
}

func (s *HandlerTestSuite) TestJobs() {
	jobs := s.handler.Jobs()
	s.Len(jobs, 2)
	s.NotNil(jobs[TypeDeadlineDigest])
	s.NotNil(jobs[TypePendingRequestsReminder])
}

func (s *HandlerTestSuite) TestDeadlineDigest() {
	s.Run("should load and digest requests", func() {
		s.expectLoad()

		err := s.handler.DeadlineDigest(context.Background(), Config{"limit": "2", "filter": `Department == "it"`})
		s.NoError(err)
		s.mockRequestService.AssertExpectations(s.T())
	})

	s.Run("should return load error", func() {
		expectedErr := errors.New("cms down")
		s.mockRequestService.EXPECT().Load(mock.Anything).Return(nil, expectedErr).Once()

		err := s.handler.DeadlineDigest(context.Background(), Config{})
		s.ErrorIs(err, expectedErr)
	})

	s.Run("should reject an invalid filter", func() {
		s.expectLoad()

		err := s.handler.DeadlineDigest(context.Background(), Config{"filter": "Status ==="})
		s.ErrorContains(err, "invalid filter")
	})

	s.Run("should reject an invalid config", func() {
		err := s.handler.DeadlineDigest(context.Background(), Config{"limit": "many"})
		s.ErrorContains(err, "invalid config")
	})
}

func (s *HandlerTestSuite) TestBuildDeadlineDigest() {
	s.Run("excludes conflicts by default", func() {
		d := buildDeadlineDigest(s.views(), DeadlineDigestConfig{Limit: 5})

		s.Equal(1, d.Overdue)
		s.Equal(1, d.DueToday)
		s.Equal(1, d.Conflicts)
		s.Equal([]string{"overdue", "today", "later", "fresh"}, ids(d.Upcoming))
	})

	s.Run("keeps conflicts and applies the limit", func() {
		d := buildDeadlineDigest(s.views(), DeadlineDigestConfig{Limit: 3, IncludeConflicts: true})
		s.Equal([]string{"overdue", "today", "conflict"}, ids(d.Upcoming))
	})
}

func (s *HandlerTestSuite) TestPendingRequestsReminder() {
	s.Run("should group pending requests", func() {
		s.expectLoad()

		err := s.handler.PendingRequestsReminder(context.Background(), Config{"older_than": "24h"})
		s.NoError(err)
	})

	s.Run("should reject an unknown grouping", func() {
		err := s.handler.PendingRequestsReminder(context.Background(), Config{"group_by": "status"})
		s.ErrorContains(err, "unsupported group_by")
	})
}

func (s *HandlerTestSuite) TestGroupPendingRequests() {
	s.Run("groups by department oldest first", func() {
		groups := groupPendingRequests(s.views(), PendingRequestsReminderConfig{GroupBy: "department"}, s.now)

		s.Require().Len(groups, 2)
		s.Equal("hr", groups[0].Key)
		s.Equal([]string{"today", "fresh"}, ids(groups[0].Requests))
		s.Equal("it", groups[1].Key)
		s.Equal([]string{"later"}, ids(groups[1].Requests))
	})

	s.Run("skips recent submissions", func() {
		groups := groupPendingRequests(s.views(), PendingRequestsReminderConfig{GroupBy: "department", OlderThan: 24 * time.Hour}, s.now)

		s.Require().Len(groups, 2)
		s.Equal([]string{"today"}, ids(groups[0].Requests))
	})
}

func TestConfigDecode(t *testing.T) {
	var cfg PendingRequestsReminderConfig
	err := Config{"older_than": "48h", "group_by": "responsible"}.Decode(&cfg)

	if err != nil {
		t.Fatal(err)
	}
	if cfg.OlderThan != 48*time.Hour || cfg.GroupBy != "responsible" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func ids(views []*domain.RequestView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.DocumentID)
	}
	return out
}
