package entity

import "time"

type Comment struct {
	ID          string    `json:"id"`
	LeadID      string    `json:"lead"`
	CommentText string    `json:"commentText"`
	Author      string    `json:"author"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DisplayDate formats the creation time as a calendar date, without the time of day.
// A zero CreatedAt renders blank.
func (c Comment) DisplayDate(layout string) string {
	if c.CreatedAt.IsZero() {
		return ""
	}
	return c.CreatedAt.Local().Format(layout)
}

// NewComment is the creation payload sent to the remote API.
type NewComment struct {
	LeadID  string `json:"lead"`
	Comment string `json:"comment"`
	Author  string `json:"author"`
}
