package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/infra/integration/anvaya"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

type closer interface {
	Close()
}

// bindPage closes page when the request context ends. The returned func
// detaches it once the handler is done.
func bindPage(ctx context.Context, page closer) func() bool {
	return context.AfterFunc(ctx, page.Close)
}

type pageRenderer struct {
	Renderer *web.Renderer
	Logger   *logging.Logger
}

func (p pageRenderer) render(w http.ResponseWriter, status int, name string, view web.View) {
	if err := p.Renderer.Render(w, status, name, view); err != nil {
		p.Logger.Error("failed to render page", "page", name, "error", err)
	}
}

// fail renders the read-failure page. Nothing is written when the client has
// already gone away.
func (p pageRenderer) fail(w http.ResponseWriter, r *http.Request, title string, err error, notices []web.Notice) {
	if errors.Is(err, usecase.ErrPageClosed) || errors.Is(r.Context().Err(), context.Canceled) {
		p.Logger.Debug("page closed before load finished", "path", r.URL.Path)
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, anvaya.ErrNotFound) {
		status = http.StatusNotFound
	}
	p.Logger.Warn("failed to load page", "path", r.URL.Path, "status", status, "error", err)

	p.render(w, status, web.PageError, web.View{
		Title:   title,
		Error:   err.Error(),
		Notices: notices,
	})
}
