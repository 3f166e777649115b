package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/xavierca1/anvaya-web/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var activityTemplate = template.Must(template.ParseFS(templateFS, "templates/activity.html"))

// Dialer is the part of *gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// WithDialer swaps the SMTP dialer.
func (s *EmailSender) WithDialer(d Dialer) *EmailSender {
	s.dialer = d
	return s
}

// SendActivity mails a summary of one CRM activity event to `to`.
func (s *EmailSender) SendActivity(to string, data ActivityEmailData) error {
	var body bytes.Buffer
	if err := activityTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render activity email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("[Anvaya CRM] %s: %s", data.Title, data.LeadName))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}

// ActivityNotifier turns queued activity events into emails for one recipient.
type ActivityNotifier struct {
	Sender    *EmailSender
	To        string
	PublicURL string
}

func (n *ActivityNotifier) HandleActivity(ctx context.Context, payload queue.ActivityPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.Sender.SendActivity(n.To, n.emailData(payload))
}

func (n *ActivityNotifier) emailData(p queue.ActivityPayload) ActivityEmailData {
	data := ActivityEmailData{
		Title:       activityTitle(p.Type),
		LeadName:    p.LeadName,
		Status:      p.Status,
		Priority:    p.Priority,
		SalesAgent:  p.SalesAgent,
		Author:      p.Author,
		CommentText: p.CommentText,
		OccurredAt:  p.OccurredAt.Format(time.RFC1123),
	}
	if data.LeadName == "" {
		data.LeadName = p.LeadID
	}
	if n.PublicURL != "" && p.LeadID != "" {
		data.LeadURL = strings.TrimRight(n.PublicURL, "/") + "/leads/" + p.LeadID
	}
	return data
}

func activityTitle(kind string) string {
	switch kind {
	case queue.ActivityLeadCreated:
		return "New lead"
	case queue.ActivityCommentCreated:
		return "New comment"
	default:
		return "Lead activity"
	}
}
