package usecase

// CreateLeadInput holds the raw field values of the "Add New Lead" form.
type CreateLeadInput struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	SalesAgent  string `json:"salesAgent"`
	Status      string `json:"status"`
	Tags        string `json:"tags"`
	Priority    string `json:"priority"`
	TimeToClose string `json:"timeToClose"`
	ClosedAt    string `json:"closedAt"`
}
