package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/career-coach/internal/domain/resume"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
)

type ResumeRepository struct {
	db *sqlx.DB
}

func NewResumeRepository(db *sqlx.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) GetByUserID(ctx context.Context, userID string) (resume.Resume, bool, error) {
	query, args, err := qb.Select(resumeColumns...).
		From(resumesTable).
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return resume.Resume{}, false, fmt.Errorf("build get resume query: %w", err)
	}

	var row resumeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return resume.Resume{}, false, nil
		}
		return resume.Resume{}, false, fmt.Errorf("get resume: %w", err)
	}
	return resumeFromRow(row), true, nil
}

func (r *ResumeRepository) Upsert(ctx context.Context, item resume.Resume) (resume.Resume, error) {
	query, args, err := qb.InsertModel(resumesTable, resumeInsertModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Content:   item.Content,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}).
		Suffix(`ON CONFLICT (user_id)
DO UPDATE SET
    content = EXCLUDED.content,
    updated_at = EXCLUDED.updated_at`).
		Returning(resumeColumns...).
		ToSQL()
	if err != nil {
		return resume.Resume{}, fmt.Errorf("build upsert resume query: %w", err)
	}

	var row resumeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return resume.Resume{}, fmt.Errorf("upsert resume: %w", err)
	}
	return resumeFromRow(row), nil
}
