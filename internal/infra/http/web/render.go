package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageDashboard  = "dashboard"
	PageLeadDetail = "lead_detail"
	PageAddLead    = "add_lead"
	PageError      = "error"
)

var pages = []string{PageDashboard, PageLeadDetail, PageAddLead, PageError}

// Notice is one toast shown at the top of the page.
type Notice struct {
	Kind    string
	Message string
}

// View is the data every template receives.
type View struct {
	Title   string
	Notices []Notice
	Page    any
	Error   string
}

type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page against the shared layout. dateLayout is the
// calendar format used for comment dates.
func NewRenderer(dateLayout string) (*Renderer, error) {
	funcs := template.FuncMap{
		"statusClass":   usecase.StatusClass,
		"statusFilters": func() []usecase.StatusFilter { return usecase.StatusFilters },
		"leadStatuses":  func() []entity.LeadStatus { return entity.LeadStatuses },
		"leadSources":   func() []entity.LeadSource { return entity.LeadSources },
		"priorities":    func() []entity.Priority { return entity.Priorities },
		"commentDate":   func(c entity.Comment) string { return c.DisplayDate(dateLayout) },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes page with status. The page is rendered to a buffer first; a
// template failure answers 500 instead of a half written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, view View) error {
	t, ok := r.templates[name]
	if !ok {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
