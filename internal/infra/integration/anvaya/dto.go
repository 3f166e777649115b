package anvaya

// leadResponse mirrors the API's lead document. Depending on the endpoint the
// id arrives as "id" or as the raw Mongo "_id".
type leadResponse struct {
	ID          string   `json:"id"`
	MongoID     string   `json:"_id"`
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	SalesAgent  ref      `json:"salesAgent"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Priority    string   `json:"priority"`
	TimeToClose int      `json:"timeToClose"`
	ClosedAt    *string  `json:"closedAt"`
}

type agentResponse struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
}

type commentResponse struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id"`
	Lead        ref    `json:"lead"`
	CommentText string `json:"commentText"`
	Author      ref    `json:"author"`
	AuthorName  string `json:"authorName"`
	CreatedAt   string `json:"createdAt"`
}

type createCommentRequest struct {
	Lead    string `json:"lead"`
	Comment string `json:"comment"`
	Author  string `json:"author"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
