package mail

type ActivityEmailData struct {
	Title       string
	LeadName    string
	LeadURL     string
	Status      string
	Priority    string
	SalesAgent  string
	Author      string
	CommentText string
	OccurredAt  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	dialer   Dialer
}
