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
	MsgCommentEmpty  = "Comment text is empty"
	MsgCommentAdded  = "Comment added successfully"
	MsgCommentFailed = "Failed to add comment"
)

type CreateCommentUseCase struct {
	Repo      LeadRepository
	Publisher ActivityPublisher
	Logger    *logging.Logger
}

func NewCreateCommentUseCase(repo LeadRepository, publisher ActivityPublisher, logger *logging.Logger) *CreateCommentUseCase {
	if logger == nil {
		logger = logging.Default()
	}
	return &CreateCommentUseCase{
		Repo:      repo,
		Publisher: publisher,
		Logger:    logger,
	}
}

// ValidateComment requires a selected author and non-blank text.
func ValidateComment(form CommentForm) ValidationErrors {
	var errors ValidationErrors
	if strings.TrimSpace(form.Author) == "" {
		errors = append(errors, ValidationError{"author", "is required"})
	}
	if strings.TrimSpace(form.Text) == "" {
		errors = append(errors, ValidationError{"comment", "is required"})
	}
	return errors
}

// Execute posts page.Form as a new comment. On success the thread is fetched
// again in full and the text is cleared; on failure the draft is kept.
func (uc *CreateCommentUseCase) Execute(ctx context.Context, page *LeadDetailPage, notify Notifier) (*entity.Comment, error) {
	if errs := ValidateComment(page.Form); len(errs) > 0 {
		notify.Error(MsgCommentEmpty)
		return nil, errs
	}

	payload := entity.NewComment{
		LeadID:  page.LeadID,
		Comment: page.Form.Text,
		Author:  page.Form.Author,
	}
	comment, err := uc.Repo.CreateComment(ctx, page.LeadID, payload)
	if err != nil {
		uc.Logger.Error("failed to create comment", "lead_id", page.LeadID, "error", err)
		notify.Error(MsgCommentFailed)
		return nil, err
	}

	notify.Success(MsgCommentAdded)
	// A failed refresh is logged by the page and leaves the old thread visible.
	_ = page.RefreshComments(ctx)
	page.Form.Text = ""

	uc.publish(ctx, page, payload, comment)
	return comment, nil
}

func (uc *CreateCommentUseCase) publish(ctx context.Context, page *LeadDetailPage, payload entity.NewComment, comment *entity.Comment) {
	if uc.Publisher == nil {
		return
	}

	event := queue.ActivityPayload{
		ID:          uuid.NewString(),
		Type:        queue.ActivityCommentCreated,
		LeadID:      page.LeadID,
		Author:      payload.Author,
		CommentText: comment.CommentText,
		OccurredAt:  time.Now().UTC(),
	}
	if page.Lead != nil {
		event.LeadName = page.Lead.Name
		event.Status = string(page.Lead.Status)
		event.Priority = string(page.Lead.Priority)
		event.SalesAgent = page.Lead.SalesAgent
	}
	if event.CommentText == "" {
		event.CommentText = payload.Comment
	}
	if err := uc.Publisher.PublishActivity(ctx, event); err != nil {
		uc.Logger.Warn("comment created but activity event not published", "lead_id", page.LeadID, "error", err)
	}
}
