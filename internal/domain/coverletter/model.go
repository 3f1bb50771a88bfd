package coverletter

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
)

type CoverLetter struct {
	ID             string
	UserID         string
	Content        string
	JobDescription string
	CompanyName    string
	JobTitle       string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Request carries what a writer needs to draft a cover letter.
type Request struct {
	JobTitle       string
	CompanyName    string
	JobDescription string
	Industry       string
	Experience     int
	Skills         []string
	Bio            string
}
