package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListComments(ctx context.Context, leadID string) ([]entity.Comment, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *MockLeadRepository) CreateLead(ctx context.Context, payload entity.NewLead) (*entity.Lead, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) CreateComment(ctx context.Context, leadID string, payload entity.NewComment) (*entity.Comment, error) {
	args := m.Called(ctx, leadID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockLeadRepository) ListAgents(ctx context.Context) ([]entity.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Agent), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishActivity(ctx context.Context, payload queue.ActivityPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// recordingNotifier keeps every notice as "kind: message".
type recordingNotifier struct {
	notices []string
}

func (n *recordingNotifier) Info(msg string)    { n.notices = append(n.notices, "info: "+msg) }
func (n *recordingNotifier) Success(msg string) { n.notices = append(n.notices, "success: "+msg) }
func (n *recordingNotifier) Error(msg string)   { n.notices = append(n.notices, "error: "+msg) }
