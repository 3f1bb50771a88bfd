package resume

import "time"

// Resume is the single markdown resume a user keeps.
type Resume struct {
	ID        string
	UserID    string
	Content   string
	ATSScore  *float64
	Feedback  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
