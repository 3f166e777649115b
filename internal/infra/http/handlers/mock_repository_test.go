package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/anvaya-web/internal/entity"
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
