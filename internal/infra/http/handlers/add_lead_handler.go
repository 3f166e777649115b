package handlers

import (
	"net/http"

	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

const addLeadTitle = "Add New Lead"

type AddLeadHandler struct {
	Repo         usecase.LeadRepository
	CreateLeadUC *usecase.CreateLeadUseCase
	pageRenderer
}

func NewAddLeadHandler(repo usecase.LeadRepository, uc *usecase.CreateLeadUseCase, renderer *web.Renderer, logger *logging.Logger) *AddLeadHandler {
	return &AddLeadHandler{
		Repo:         repo,
		CreateLeadUC: uc,
		pageRenderer: pageRenderer{Renderer: renderer, Logger: logger},
	}
}

// Show serves GET /addLead.
func (h *AddLeadHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := usecase.NewAddLeadPage(h.Repo)
	defer bindPage(r.Context(), page)()

	if err := page.Load(r.Context()); err != nil {
		h.fail(w, r, addLeadTitle, err, nil)
		return
	}

	h.render(w, http.StatusOK, web.PageAddLead, web.View{
		Title: addLeadTitle,
		Page:  page,
	})
}

// Create serves POST /addLead. The form is rendered back as submitted on
// every outcome.
func (h *AddLeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	page := usecase.NewAddLeadPage(h.Repo)
	defer bindPage(r.Context(), page)()

	if err := page.Load(r.Context()); err != nil {
		h.fail(w, r, addLeadTitle, err, nil)
		return
	}

	page.Form = usecase.CreateLeadInput{
		Name:        r.PostFormValue("name"),
		Source:      r.PostFormValue("source"),
		SalesAgent:  r.PostFormValue("salesAgent"),
		Status:      r.PostFormValue("status"),
		Tags:        r.PostFormValue("tags"),
		Priority:    r.PostFormValue("priority"),
		TimeToClose: r.PostFormValue("timeToClose"),
		ClosedAt:    r.PostFormValue("closedAt"),
	}

	notices := &Notices{}
	status := http.StatusOK
	if _, err := h.CreateLeadUC.Execute(r.Context(), page, notices); err != nil {
		status = submitStatus(err)
	}

	h.render(w, status, web.PageAddLead, web.View{
		Title:   addLeadTitle,
		Notices: notices.Items(),
		Page:    page,
	})
}
