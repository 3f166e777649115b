package usecase

import (
	"context"

	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/internal/infra/queue"
)

// LeadRepository is the remote CRM API as the pages see it.
type LeadRepository interface {
	ListLeads(ctx context.Context) ([]entity.Lead, error)
	GetLead(ctx context.Context, id string) (*entity.Lead, error)
	ListComments(ctx context.Context, leadID string) ([]entity.Comment, error)
	CreateLead(ctx context.Context, payload entity.NewLead) (*entity.Lead, error)
	CreateComment(ctx context.Context, leadID string, payload entity.NewComment) (*entity.Comment, error)
	ListAgents(ctx context.Context) ([]entity.Agent, error)
}

// Notifier is the toast sink of the presentation shell.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

type ActivityPublisher interface {
	PublishActivity(ctx context.Context, payload queue.ActivityPayload) error
}
