package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/anvaya-web/internal/entity"
	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
	"github.com/xavierca1/anvaya-web/internal/infra/integration/anvaya"
	"github.com/xavierca1/anvaya-web/internal/usecase"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

var agents = []entity.Agent{
	{ID: "a1", Name: "Priya Shah"},
	{ID: "a2", Name: "Tom Reyes"},
}

func newRouter(t *testing.T, repo *MockLeadRepository, mode usecase.FooterMode) http.Handler {
	t.Helper()
	renderer, err := web.NewRenderer("1/2/2006")
	require.NoError(t, err)
	logger := logging.Discard()

	dashboard := NewDashboardHandler(repo, mode, renderer, logger)
	detail := NewLeadDetailHandler(repo, usecase.NewCreateCommentUseCase(repo, nil, logger), renderer, logger)
	addLead := NewAddLeadHandler(repo, usecase.NewCreateLeadUseCase(repo, nil, logger), renderer, logger)

	r := chi.NewRouter()
	r.Get("/", dashboard.Handle)
	r.Get("/leads/{id}", detail.Show)
	r.Post("/leads/{id}/comments", detail.AddComment)
	r.Get("/addLead", addLead.Show)
	r.Post("/addLead", addLead.Create)
	return r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sampleLeads() []entity.Lead {
	return []entity.Lead{
		{ID: "l1", Name: "Acme", Status: entity.StatusNew},
		{ID: "l2", Name: "Globex", Status: entity.StatusContacted},
		{ID: "l3", Name: "Initech", Status: entity.StatusQualified},
		{ID: "l4", Name: "Umbrella", Status: entity.StatusClosed},
		{ID: "l5", Name: "Hooli", Status: entity.StatusProposalSent},
	}
}

func TestDashboardFiltersGridButNotFooter(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListLeads", mock.Anything).Return(sampleLeads(), nil).Once()

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?status=New", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lead Name: Acme")
	assert.NotContains(t, body, "Lead Name: Globex")
	assert.Contains(t, body, `href="/leads/l1"`)
	assert.Contains(t, body, `<option value="New" selected>`)
	assert.Contains(t, body, `All Leads: <span class="font-extrabold text-sky-600">5</span>`)
	// Qualified folds into Proposal Sent.
	assert.Contains(t, body, `Proposal Sent: <span class="font-extrabold text-blue-600">2</span>`)
	assert.NotContains(t, body, "Qualified: <span")
	repo.AssertExpectations(t)
}

func TestDashboardExactFooter(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListLeads", mock.Anything).Return(sampleLeads(), nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterExact).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `Proposal Sent: <span class="font-extrabold text-blue-600">1</span>`)
	assert.Contains(t, body, `Qualified: <span class="font-extrabold text-gray-600">1</span>`)
	assert.Contains(t, body, "Lead Name: Globex")
}

func TestDashboardEmptyList(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListLeads", mock.Anything).Return([]entity.Lead{}, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?status=Bogus", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No leads data available.")
	assert.Contains(t, rec.Body.String(), `<option value="All" selected>`)
}

func TestDashboardFetchFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListLeads", mock.Anything).Return(nil, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching data: connection refused")
}

func TestLeadDetailShow(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := &entity.Lead{ID: "l1", Name: "Acme", Source: entity.SourceReferral, SalesAgent: "a2",
		Status: entity.StatusQualified, Priority: entity.PriorityHigh, TimeToClose: 14, Tags: []string{"vip", "q3"}}
	comments := []entity.Comment{
		{ID: "c2", CommentText: "Second", AuthorName: "Tom Reyes", CreatedAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)},
		{ID: "c1", CommentText: "First", AuthorName: "Priya Shah", CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	repo.On("GetLead", mock.Anything, "l1").Return(lead, nil)
	repo.On("ListComments", mock.Anything, "l1").Return(comments, nil)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/l1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lead Management : Acme")
	assert.Contains(t, body, "Sales Agent:</span> Tom Reyes")
	assert.Contains(t, body, "Time to Close:</span> 14 Days")
	assert.Contains(t, body, "vip, q3")
	assert.Contains(t, body, "3/5/2024")
	assert.Less(t, strings.Index(body, "Second"), strings.Index(body, "First"))
}

func TestLeadDetailNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("GetLead", mock.Anything, "missing").
		Return(nil, &anvaya.NetworkError{Op: "get lead", StatusCode: http.StatusNotFound, Message: "Lead not found"})

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching data: get lead: status 404: Lead not found")
	repo.AssertNotCalled(t, "ListComments", mock.Anything, mock.Anything)
}

func TestAddCommentSuccessRefetchesThread(t *testing.T) {
	repo := new(MockLeadRepository)
	lead := &entity.Lead{ID: "l1", Name: "Acme", SalesAgent: "a1", Status: entity.StatusNew}
	repo.On("GetLead", mock.Anything, "l1").Return(lead, nil)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)
	repo.On("ListComments", mock.Anything, "l1").Return([]entity.Comment{}, nil).Once()
	repo.On("ListComments", mock.Anything, "l1").Return([]entity.Comment{
		{ID: "c1", CommentText: "Called, sending deck", AuthorName: "Priya Shah"},
	}, nil).Once()
	repo.On("CreateComment", mock.Anything, "l1", entity.NewComment{LeadID: "l1", Comment: "Called, sending deck", Author: "a1"}).
		Return(&entity.Comment{ID: "c1", CommentText: "Called, sending deck"}, nil).Once()

	rec := httptest.NewRecorder()
	form := url.Values{"author": {"a1"}, "comment": {"Called, sending deck"}}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/leads/l1/comments", form))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Comment added successfully")
	assert.Contains(t, body, `<p class="text-gray-800">Called, sending deck</p>`)
	assert.Contains(t, body, `placeholder="Type your comment here..." class="w-full border border-gray-300 rounded-lg px-3 py-2"></textarea>`)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "ListComments", 2)
}

func TestAddCommentBlankTextMakesNoCall(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("GetLead", mock.Anything, "l1").Return(&entity.Lead{ID: "l1", Name: "Acme"}, nil)
	repo.On("ListComments", mock.Anything, "l1").Return([]entity.Comment{}, nil)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)

	rec := httptest.NewRecorder()
	form := url.Values{"author": {"a1"}, "comment": {"   "}}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/leads/l1/comments", form))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Comment text is empty")
	repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddCommentFailureKeepsDraft(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("GetLead", mock.Anything, "l1").Return(&entity.Lead{ID: "l1", Name: "Acme"}, nil)
	repo.On("ListComments", mock.Anything, "l1").Return([]entity.Comment{}, nil)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)
	repo.On("CreateComment", mock.Anything, "l1", mock.Anything).Return(nil, errors.New("boom"))

	rec := httptest.NewRecorder()
	form := url.Values{"author": {"a2"}, "comment": {"Left voicemail"}}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/leads/l1/comments", form))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to add comment")
	assert.Contains(t, body, ">Left voicemail</textarea>")
	assert.Contains(t, body, `<option value="a2" selected>`)
	repo.AssertNumberOfCalls(t, "ListComments", 1)
}

func TestAddLeadShowListsAgents(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/addLead", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="a1">Priya Shah</option>`)
	assert.Contains(t, body, `<option value="Cold Call">Cold Call</option>`)
	assert.Contains(t, body, `max="`+time.Now().Format(entity.DateLayout)+`"`)
}

func TestAddLeadAgentsFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListAgents", mock.Anything).Return(nil, errors.New("timeout"))

	rec := httptest.NewRecorder()
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/addLead", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching data: timeout")
}

func TestAddLeadClosedWithoutDate(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)

	rec := httptest.NewRecorder()
	form := url.Values{
		"name": {"Acme"}, "source": {"Website"}, "salesAgent": {"a1"}, "status": {"Closed"},
		"priority": {"High"}, "timeToClose": {"10"}, "tags": {"vip"},
	}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/addLead", form))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Validating lead details")
	assert.Contains(t, body, "closed at cannot be left blank if status is closed")
	assert.Contains(t, body, `value="Acme"`)
	assert.Contains(t, body, `<option value="Closed" selected>`)
	repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestAddLeadSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)
	repo.On("CreateLead", mock.Anything, mock.MatchedBy(func(p entity.NewLead) bool {
		return p.Name == "Acme" && p.Status == entity.StatusContacted && p.TimeToClose == 30 &&
			p.ClosedAt == nil && assert.ObjectsAreEqual([]string{"a", "b", "c"}, p.Tags)
	})).Return(&entity.Lead{ID: "l9", Name: "Acme"}, nil).Once()

	rec := httptest.NewRecorder()
	form := url.Values{
		"name": {"Acme"}, "source": {"Email"}, "salesAgent": {"a2"}, "status": {"Contacted"},
		"priority": {"Low"}, "timeToClose": {"30"}, "tags": {"a, b ,, c"}, "closedAt": {"2024-01-02"},
	}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/addLead", form))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lead added successfully")
	// The form is not reset after a successful submit.
	assert.Contains(t, body, `value="Acme"`)
	repo.AssertExpectations(t)
}

func TestAddLeadUpstreamFailure(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("ListAgents", mock.Anything).Return(agents, nil)
	repo.On("CreateLead", mock.Anything, mock.Anything).Return(nil, &anvaya.NetworkError{Op: "create lead", StatusCode: 400, Message: "bad"})

	rec := httptest.NewRecorder()
	form := url.Values{
		"name": {"Acme"}, "source": {"Email"}, "salesAgent": {"a2"}, "status": {"New"},
		"priority": {"Low"}, "timeToClose": {"3"},
	}
	newRouter(t, repo, usecase.FooterDerived).ServeHTTP(rec, postForm("/addLead", form))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to add Lead")
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeConn struct{ closed bool }

func (f fakeConn) IsClosed() bool { return f.closed }

func TestHealthHealthy(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["anvaya_api"])
	assert.Equal(t, "not configured", resp.Dependencies["rabbitmq"])
}

func TestHealthDegraded(t *testing.T) {
	h := NewHealthHandler(fakePinger{err: errors.New("dial tcp: refused")}, fakeConn{closed: true})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy: dial tcp: refused", resp.Dependencies["anvaya_api"])
	assert.Equal(t, "unhealthy: connection closed", resp.Dependencies["rabbitmq"])
}

func TestNoticesCollectInOrder(t *testing.T) {
	n := &Notices{}
	n.Info("one")
	n.Success("two")
	n.Error("three")

	assert.Equal(t, []web.Notice{
		{Kind: NoticeInfo, Message: "one"},
		{Kind: NoticeSuccess, Message: "two"},
		{Kind: NoticeError, Message: "three"},
	}, n.Items())
}
