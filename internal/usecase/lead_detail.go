package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

// CommentForm is the draft state of the "Add Comment" form.
type CommentForm struct {
	Author string
	Text   string
}

// LeadDetailPage is the view-model behind "/leads/{id}".
type LeadDetailPage struct {
	Page
	repo   LeadRepository
	logger *logging.Logger

	LeadID   string
	Lead     *entity.Lead
	Agents   []entity.Agent
	Comments []entity.Comment
	Form     CommentForm
}

func NewLeadDetailPage(repo LeadRepository, logger *logging.Logger, leadID string) *LeadDetailPage {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadDetailPage{
		repo:     repo,
		logger:   logger,
		LeadID:   leadID,
		Comments: []entity.Comment{},
	}
}

// Load fetches the lead, then its comments, then the agent list, in that order.
// A failed comment fetch is logged and leaves the thread empty; the other two
// failures become the page error.
func (p *LeadDetailPage) Load(ctx context.Context) error {
	if err := p.begin(); err != nil {
		return err
	}
	err := p.load(ctx)
	p.finish(err)
	return err
}

func (p *LeadDetailPage) load(ctx context.Context) error {
	getLead := func(ctx context.Context) (*entity.Lead, error) {
		return p.repo.GetLead(ctx, p.LeadID)
	}
	if err := Await(ctx, &p.Page, getLead, func(lead *entity.Lead) { p.Lead = lead }); err != nil {
		return err
	}

	if err := p.RefreshComments(ctx); errors.Is(err, ErrPageClosed) {
		return err
	}

	return Await(ctx, &p.Page, p.repo.ListAgents, func(agents []entity.Agent) {
		if agents == nil {
			agents = []entity.Agent{}
		}
		p.Agents = agents
	})
}

// RefreshComments replaces the thread with the server's current list. On
// failure the previous list is kept and the error is logged and returned.
func (p *LeadDetailPage) RefreshComments(ctx context.Context) error {
	listComments := func(ctx context.Context) ([]entity.Comment, error) {
		return p.repo.ListComments(ctx, p.LeadID)
	}
	err := Await(ctx, &p.Page, listComments, func(comments []entity.Comment) {
		if comments == nil {
			comments = []entity.Comment{}
		}
		p.Comments = comments
	})
	if err != nil && !errors.Is(err, ErrPageClosed) {
		p.logger.Error("failed to fetch comments", "lead_id", p.LeadID, "error", err)
	}
	return err
}

// AgentName resolves the lead's sales agent. It is blank when the lead or the
// agent list is missing, or when no agent matches.
func (p *LeadDetailPage) AgentName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Lead == nil {
		return ""
	}
	if agent := entity.FindAgent(p.Agents, p.Lead.SalesAgent); agent != nil {
		return agent.Name
	}
	return ""
}
