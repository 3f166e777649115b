package anvaya

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/anvaya-web/internal/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "anvaya.internal.infra.integration.anvaya"

// Client talks to the Anvaya CRM REST API. It never retries and never caches.
type Client struct {
	baseURL string
	http    *http.Client
	onError func(op string, err error)
	tracer  trace.Tracer
}

type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithErrorHook registers fn to be called once for each failed call.
func WithErrorHook(fn func(op string, err error)) Option {
	return func(c *Client) {
		c.onError = fn
	}
}

// WithTracerProvider replaces the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	var out []leadResponse
	if err := c.do(ctx, "list leads", http.MethodGet, "/leads", nil, &out); err != nil {
		return nil, err
	}

	leads := make([]entity.Lead, 0, len(out))
	for _, l := range out {
		leads = append(leads, toLead(l))
	}
	return leads, nil
}

func (c *Client) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	var out leadResponse
	if err := c.do(ctx, "get lead", http.MethodGet, "/leads/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}

	lead := toLead(out)
	return &lead, nil
}

func (c *Client) ListComments(ctx context.Context, leadID string) ([]entity.Comment, error) {
	var out []commentResponse
	path := fmt.Sprintf("/leads/%s/comments", url.PathEscape(leadID))
	if err := c.do(ctx, "list comments", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	comments := make([]entity.Comment, 0, len(out))
	for _, cm := range out {
		comments = append(comments, toComment(cm))
	}
	return comments, nil
}

func (c *Client) CreateLead(ctx context.Context, payload entity.NewLead) (*entity.Lead, error) {
	if payload.Tags == nil {
		payload.Tags = []string{}
	}

	var out leadResponse
	if err := c.do(ctx, "create lead", http.MethodPost, "/leads", payload, &out); err != nil {
		return nil, err
	}

	lead := toLead(out)
	return &lead, nil
}

func (c *Client) CreateComment(ctx context.Context, leadID string, payload entity.NewComment) (*entity.Comment, error) {
	body := createCommentRequest{
		Lead:    leadID,
		Comment: payload.Comment,
		Author:  payload.Author,
	}

	var out commentResponse
	path := fmt.Sprintf("/leads/%s/comments", url.PathEscape(leadID))
	if err := c.do(ctx, "create comment", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}

	comment := toComment(out)
	if comment.LeadID == "" {
		comment.LeadID = leadID
	}
	return &comment, nil
}

func (c *Client) ListAgents(ctx context.Context) ([]entity.Agent, error) {
	var out []agentResponse
	if err := c.do(ctx, "list agents", http.MethodGet, "/agents", nil, &out); err != nil {
		return nil, err
	}

	agents := make([]entity.Agent, 0, len(out))
	for _, a := range out {
		agents = append(agents, toAgent(a))
	}
	return agents, nil
}

// Ping checks that the API answers; used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/agents", nil, nil)
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "anvaya."+strings.ReplaceAll(op, " ", "_"))
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("anvaya.path", path),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if c.onError != nil {
				c.onError(op, err)
			}
		}
		span.End()
	}()

	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return &NetworkError{Op: op, Message: "encode request: " + err.Error(), Err: err}
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Message: err.Error(), Err: err}
	}
	c.setHeaders(req, in != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "AnvayaWeb/1.0")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

// errorMessage prefers the API's own error text over the bare status line.
func errorMessage(status int, raw []byte) string {
	var payload errorResponse
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(status)
}
