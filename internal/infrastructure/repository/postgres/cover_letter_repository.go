package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type CoverLetterRepository struct {
	db *sqlx.DB
}

func NewCoverLetterRepository(db *sqlx.DB) *CoverLetterRepository {
	return &CoverLetterRepository{db: db}
}

func (r *CoverLetterRepository) Create(ctx context.Context, item coverletter.CoverLetter) (coverletter.CoverLetter, error) {
	query, args, err := qb.InsertModel(coverLettersTable, coverLetterRowFrom(item)).
		Returning(coverLetterColumns...).
		ToSQL()
	if err != nil {
		return coverletter.CoverLetter{}, fmt.Errorf("build insert cover letter query: %w", err)
	}

	var row coverLetterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return coverletter.CoverLetter{}, fmt.Errorf("%w: cover letter %s: %v", usecase.ErrConflict, item.ID, err)
		}
		return coverletter.CoverLetter{}, fmt.Errorf("insert cover letter: %w", err)
	}
	return coverLetterFromRow(row), nil
}

func (r *CoverLetterRepository) GetByID(ctx context.Context, userID, id string) (coverletter.CoverLetter, bool, error) {
	query, args, err := qb.Select(coverLetterColumns...).
		From(coverLettersTable).
		Where(qb.Eq("id", id), qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return coverletter.CoverLetter{}, false, fmt.Errorf("build get cover letter query: %w", err)
	}

	var row coverLetterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return coverletter.CoverLetter{}, false, nil
		}
		return coverletter.CoverLetter{}, false, fmt.Errorf("get cover letter: %w", err)
	}
	return coverLetterFromRow(row), true, nil
}

func (r *CoverLetterRepository) ListByUserID(ctx context.Context, userID string) ([]coverletter.CoverLetter, error) {
	query, args, err := qb.Select(coverLetterColumns...).
		From(coverLettersTable).
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cover letters query: %w", err)
	}

	var rows []coverLetterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list cover letters: %w", err)
	}

	out := make([]coverletter.CoverLetter, 0, len(rows))
	for _, row := range rows {
		out = append(out, coverLetterFromRow(row))
	}
	return out, nil
}

func (r *CoverLetterRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query, args, err := qb.DeleteFrom(coverLettersTable).
		Where(qb.Eq("id", id), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete cover letter query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete cover letter: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete cover letter rows affected: %w", err)
	}
	return affected > 0, nil
}
