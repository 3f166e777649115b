package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/internal/infra/queue"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

const (
	MsgValidatingLead   = "Validating lead details"
	MsgClosedAtRequired = "closed at cannot be left blank if status is closed"
	MsgLeadAdded        = "Lead added successfully"
	MsgLeadFailed       = "Failed to add Lead"
)

// AddLeadPage is the view-model behind "/addLead".
type AddLeadPage struct {
	Page
	repo LeadRepository

	Agents []entity.Agent
	Form   CreateLeadInput
	Errors ValidationErrors
}

func NewAddLeadPage(repo LeadRepository) *AddLeadPage {
	return &AddLeadPage{repo: repo}
}

// Load fetches the agents offered by the sales agent select.
func (p *AddLeadPage) Load(ctx context.Context) error {
	if err := p.begin(); err != nil {
		return err
	}
	err := Await(ctx, &p.Page, p.repo.ListAgents, func(agents []entity.Agent) {
		if agents == nil {
			agents = []entity.Agent{}
		}
		p.Agents = agents
	})
	p.finish(err)
	return err
}

// Today is the upper bound offered by the closedAt date input.
func (p *AddLeadPage) Today() string {
	return time.Now().Format(entity.DateLayout)
}

type CreateLeadUseCase struct {
	Repo      LeadRepository
	Publisher ActivityPublisher
	Logger    *logging.Logger
}

func NewCreateLeadUseCase(repo LeadRepository, publisher ActivityPublisher, logger *logging.Logger) *CreateLeadUseCase {
	if logger == nil {
		logger = logging.Default()
	}
	return &CreateLeadUseCase{
		Repo:      repo,
		Publisher: publisher,
		Logger:    logger,
	}
}

// Execute submits page.Form. Validation failures notify and return before any
// request is made; the form is left as typed on every outcome.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, page *AddLeadPage, notify Notifier) (*entity.Lead, error) {
	notify.Info(MsgValidatingLead)

	if verr := CheckClosedAt(page.Form); verr != nil {
		page.Errors = ValidationErrors{*verr}
		notify.Error(MsgClosedAtRequired)
		return nil, page.Errors
	}

	if errs := ValidateCreateLeadInput(page.Form, page.Agents); len(errs) > 0 {
		page.Errors = errs
		notify.Error("validation failed: " + errs.Error())
		return nil, errs
	}
	page.Errors = nil

	payload := BuildNewLead(page.Form)
	lead, err := uc.Repo.CreateLead(ctx, payload)
	if err != nil {
		uc.Logger.Error("failed to create lead", "name", payload.Name, "error", err)
		notify.Error(MsgLeadFailed)
		return nil, err
	}

	uc.Logger.Info("lead created", "id", lead.ID, "name", lead.Name)
	notify.Success(MsgLeadAdded)
	uc.publish(ctx, lead, payload)
	return lead, nil
}

// BuildNewLead assembles the creation payload from already validated input.
// closedAt is only sent for Closed leads.
func BuildNewLead(input CreateLeadInput) entity.NewLead {
	timeToClose, _ := parseTimeToClose(input.TimeToClose)

	payload := entity.NewLead{
		Name:        strings.TrimSpace(input.Name),
		Source:      entity.LeadSource(input.Source),
		SalesAgent:  input.SalesAgent,
		Status:      entity.LeadStatus(input.Status),
		Tags:        ParseTags(input.Tags),
		Priority:    entity.Priority(input.Priority),
		TimeToClose: timeToClose,
	}
	if closedAt := strings.TrimSpace(input.ClosedAt); closedAt != "" && payload.Status == entity.StatusClosed {
		payload.ClosedAt = &closedAt
	}
	return payload
}

func (uc *CreateLeadUseCase) publish(ctx context.Context, lead *entity.Lead, payload entity.NewLead) {
	if uc.Publisher == nil {
		return
	}

	event := queue.ActivityPayload{
		ID:         uuid.NewString(),
		Type:       queue.ActivityLeadCreated,
		LeadID:     lead.ID,
		LeadName:   payload.Name,
		Status:     string(payload.Status),
		Priority:   string(payload.Priority),
		SalesAgent: payload.SalesAgent,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.Publisher.PublishActivity(ctx, event); err != nil {
		uc.Logger.Warn("lead created but activity event not published", "id", lead.ID, "error", err)
	}
}
