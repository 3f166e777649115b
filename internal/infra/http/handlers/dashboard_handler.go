package handlers

import (
	"net/http"

	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

const dashboardTitle = "Anvaya CRM Dashboard"

type DashboardHandler struct {
	Repo       usecase.LeadRepository
	FooterMode usecase.FooterMode
	pageRenderer
}

func NewDashboardHandler(repo usecase.LeadRepository, mode usecase.FooterMode, renderer *web.Renderer, logger *logging.Logger) *DashboardHandler {
	return &DashboardHandler{
		Repo:         repo,
		FooterMode:   mode,
		pageRenderer: pageRenderer{Renderer: renderer, Logger: logger},
	}
}

// Handle serves GET /. The optional ?status= query narrows the grid.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseStatusFilter(r.URL.Query().Get("status"))
	page := usecase.NewDashboardPage(h.Repo, filter, h.FooterMode)
	defer bindPage(r.Context(), page)()

	if err := page.Load(r.Context()); err != nil {
		h.fail(w, r, dashboardTitle, err, nil)
		return
	}

	h.render(w, http.StatusOK, web.PageDashboard, web.View{
		Title: dashboardTitle,
		Page:  page,
	})
}
