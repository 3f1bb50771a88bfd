package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/career-coach/internal/domain/user"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
)

const usersTable = "users"

type userTableModel struct {
	ID         string         `db:"id"`
	ExternalID string         `db:"clerk_user_id"`
	Email      string         `db:"email"`
	Name       sql.NullString `db:"name"`
	ImageURL   sql.NullString `db:"image_url"`
	Industry   sql.NullString `db:"industry"`
	Experience sql.NullInt64  `db:"experience"`
	Bio        sql.NullString `db:"bio"`
	Skills     pq.StringArray `db:"skills"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type userInsertModel struct {
	ID         string         `db:"id"`
	ExternalID string         `db:"clerk_user_id"`
	Email      string         `db:"email"`
	Name       *string        `db:"name"`
	ImageURL   *string        `db:"image_url"`
	Skills     pq.StringArray `db:"skills"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

var userColumns = qb.ColumnsOf(userTableModel{})

func userFromRow(row userTableModel) user.Profile {
	return user.Profile{
		ID:         row.ID,
		ExternalID: row.ExternalID,
		Email:      row.Email,
		Name:       row.Name.String,
		ImageURL:   row.ImageURL.String,
		Industry:   strings.TrimSpace(row.Industry.String),
		Experience: int(row.Experience.Int64),
		Bio:        row.Bio.String,
		Skills:     fromStringArray(row.Skills),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func userInsertFromProfile(p user.Profile) userInsertModel {
	return userInsertModel{
		ID:         p.ID,
		ExternalID: strings.TrimSpace(p.ExternalID),
		Email:      p.Email,
		Name:       optionalString(p.Name),
		ImageURL:   optionalString(p.ImageURL),
		Skills:     stringArray(p.Skills),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
