package anvaya

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/xavierca1/anvaya-web/internal/entity"
)

// ref accepts a reference as a bare id string or as a populated
// document ({"_id": "...", "name": "..."}).
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ref{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var doc agentResponse
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.ID = firstNonEmpty(doc.ID, doc.MongoID)
	r.Name = doc.Name
	return nil
}

func toLead(in leadResponse) entity.Lead {
	lead := entity.Lead{
		ID:          firstNonEmpty(in.ID, in.MongoID),
		Name:        in.Name,
		Source:      entity.LeadSource(in.Source),
		SalesAgent:  in.SalesAgent.ID,
		Status:      entity.LeadStatus(in.Status),
		Tags:        in.Tags,
		Priority:    entity.Priority(in.Priority),
		TimeToClose: in.TimeToClose,
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	if in.ClosedAt != nil {
		if t, ok := parseTime(*in.ClosedAt); ok {
			lead.ClosedAt = &t
		}
	}
	return lead
}

func toAgent(in agentResponse) entity.Agent {
	return entity.Agent{
		ID:   firstNonEmpty(in.ID, in.MongoID),
		Name: in.Name,
	}
}

func toComment(in commentResponse) entity.Comment {
	c := entity.Comment{
		ID:          firstNonEmpty(in.ID, in.MongoID),
		LeadID:      in.Lead.ID,
		CommentText: in.CommentText,
		Author:      in.Author.ID,
		AuthorName:  firstNonEmpty(in.AuthorName, in.Author.Name),
	}
	if t, ok := parseTime(in.CreatedAt); ok {
		c.CreatedAt = t
	}
	return c
}

// parseTime understands the API's ISO timestamps and plain calendar dates.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, entity.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
