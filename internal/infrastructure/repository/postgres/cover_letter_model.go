package postgres

import (
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
)

const coverLettersTable = "cover_letters"

type coverLetterTableModel struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Content        string    `db:"content"`
	JobDescription string    `db:"job_description"`
	CompanyName    string    `db:"company_name"`
	JobTitle       string    `db:"job_title"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

var coverLetterColumns = qb.ColumnsOf(coverLetterTableModel{})

func coverLetterFromRow(row coverLetterTableModel) coverletter.CoverLetter {
	return coverletter.CoverLetter{
		ID:             row.ID,
		UserID:         row.UserID,
		Content:        row.Content,
		JobDescription: row.JobDescription,
		CompanyName:    row.CompanyName,
		JobTitle:       row.JobTitle,
		Status:         coverletter.Status(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func coverLetterRowFrom(item coverletter.CoverLetter) coverLetterTableModel {
	status := item.Status
	if status == "" {
		status = coverletter.StatusDraft
	}
	return coverLetterTableModel{
		ID:             item.ID,
		UserID:         item.UserID,
		Content:        item.Content,
		JobDescription: item.JobDescription,
		CompanyName:    item.CompanyName,
		JobTitle:       item.JobTitle,
		Status:         string(status),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
