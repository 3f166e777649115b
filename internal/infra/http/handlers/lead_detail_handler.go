package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

type LeadDetailHandler struct {
	Repo            usecase.LeadRepository
	CreateCommentUC *usecase.CreateCommentUseCase
	pageRenderer
}

func NewLeadDetailHandler(repo usecase.LeadRepository, uc *usecase.CreateCommentUseCase, renderer *web.Renderer, logger *logging.Logger) *LeadDetailHandler {
	return &LeadDetailHandler{
		Repo:            repo,
		CreateCommentUC: uc,
		pageRenderer:    pageRenderer{Renderer: renderer, Logger: logger},
	}
}

// Show serves GET /leads/{id}.
func (h *LeadDetailHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := usecase.NewLeadDetailPage(h.Repo, h.Logger, chi.URLParam(r, "id"))
	defer bindPage(r.Context(), page)()

	if err := page.Load(r.Context()); err != nil {
		h.fail(w, r, leadTitle(page), err, nil)
		return
	}

	h.render(w, http.StatusOK, web.PageLeadDetail, web.View{
		Title: leadTitle(page),
		Page:  page,
	})
}

// AddComment serves POST /leads/{id}/comments and re-renders the detail page
// with the outcome as a toast.
func (h *LeadDetailHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	page := usecase.NewLeadDetailPage(h.Repo, h.Logger, chi.URLParam(r, "id"))
	defer bindPage(r.Context(), page)()

	if err := page.Load(r.Context()); err != nil {
		h.fail(w, r, leadTitle(page), err, nil)
		return
	}

	page.Form = usecase.CommentForm{
		Author: r.PostFormValue("author"),
		Text:   r.PostFormValue("comment"),
	}

	notices := &Notices{}
	status := http.StatusOK
	if _, err := h.CreateCommentUC.Execute(r.Context(), page, notices); err != nil {
		status = submitStatus(err)
	}

	h.render(w, status, web.PageLeadDetail, web.View{
		Title:   leadTitle(page),
		Notices: notices.Items(),
		Page:    page,
	})
}

func leadTitle(page *usecase.LeadDetailPage) string {
	if page.Lead == nil {
		return "Lead Management"
	}
	return "Lead Management : " + page.Lead.Name
}

func submitStatus(err error) int {
	switch {
	case usecase.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrPageClosed):
		return http.StatusOK
	default:
		return http.StatusBadGateway
	}
}
