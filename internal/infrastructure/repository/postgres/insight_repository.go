package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
	"github.com/riskibarqy/career-coach/internal/usecase"
)

type InsightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) GetByIndustry(ctx context.Context, industry string) (insight.Insight, bool, error) {
	query, args, err := qb.Select(insightColumns...).
		From(insightsTable).
		Where(qb.Eq("industry", industry)).
		Limit(1).
		ToSQL()
	if err != nil {
		return insight.Insight{}, false, fmt.Errorf("build get insight query: %w", err)
	}

	var row insightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return insight.Insight{}, false, nil
		}
		return insight.Insight{}, false, fmt.Errorf("get insight by industry: %w", err)
	}
	return insightFromRow(row), true, nil
}

func (r *InsightRepository) Create(ctx context.Context, item insight.Insight) (insight.Insight, error) {
	query, args, err := qb.InsertModel(insightsTable, insightRowFrom(item)).
		Returning(insightColumns...).
		ToSQL()
	if err != nil {
		return insight.Insight{}, fmt.Errorf("build insert insight query: %w", err)
	}

	var row insightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return insight.Insight{}, fmt.Errorf("%w: insight for industry %q: %v", usecase.ErrConflict, item.Industry, err)
		}
		return insight.Insight{}, fmt.Errorf("insert insight: %w", err)
	}
	return insightFromRow(row), nil
}

func (r *InsightRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]insight.Insight, error) {
	query, args, err := qb.Select(insightColumns...).
		From(insightsTable).
		Where(qb.Compare("next_update", "<=", now)).
		OrderBy("next_update ASC", "industry ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list due insights query: %w", err)
	}

	var rows []insightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list due insights: %w", err)
	}

	out := make([]insight.Insight, 0, len(rows))
	for _, row := range rows {
		out = append(out, insightFromRow(row))
	}
	return out, nil
}

// Replace overwrites the generated fields of an industry's insight, keeping its id.
func (r *InsightRepository) Replace(ctx context.Context, item insight.Insight) (insight.Insight, error) {
	row := insightRowFrom(item)
	query, args, err := qb.Update(insightsTable).
		Set("salary_ranges", row.SalaryRanges).
		Set("growth_rate", row.GrowthRate).
		Set("demand_level", row.DemandLevel).
		Set("top_skills", row.TopSkills).
		Set("market_outlook", row.MarketOutlook).
		Set("key_trends", row.KeyTrends).
		Set("recommended_skills", row.RecommendedSkills).
		Set("last_updated", row.LastUpdated).
		Set("next_update", row.NextUpdate).
		Where(qb.Eq("industry", item.Industry)).
		Returning(insightColumns...).
		ToSQL()
	if err != nil {
		return insight.Insight{}, fmt.Errorf("build replace insight query: %w", err)
	}

	var out insightTableModel
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		if isNotFound(err) {
			return insight.Insight{}, fmt.Errorf("%w: insight for industry %q", usecase.ErrNotFound, item.Industry)
		}
		return insight.Insight{}, fmt.Errorf("replace insight: %w", err)
	}
	return insightFromRow(out), nil
}
