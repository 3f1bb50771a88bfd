package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/resume"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
)

const resumesTable = "resumes"

type resumeTableModel struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	Content   string          `db:"content"`
	ATSScore  sql.NullFloat64 `db:"ats_score"`
	Feedback  sql.NullString  `db:"feedback"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

type resumeInsertModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var resumeColumns = qb.ColumnsOf(resumeTableModel{})

func resumeFromRow(row resumeTableModel) resume.Resume {
	out := resume.Resume{
		ID:        row.ID,
		UserID:    row.UserID,
		Content:   row.Content,
		Feedback:  row.Feedback.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.ATSScore.Valid {
		score := row.ATSScore.Float64
		out.ATSScore = &score
	}
	return out
}
