package postgres

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	qb "github.com/riskibarqy/career-coach/internal/platform/querybuilder"
)

const insightsTable = "industry_insights"

// salaryRangesJSON maps the salary_ranges jsonb column.
type salaryRangesJSON []insight.SalaryRange

func (s salaryRangesJSON) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return sonic.Marshal([]insight.SalaryRange(s))
}

func (s *salaryRangesJSON) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = salaryRangesJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan salary ranges: unsupported type %T", src)
	}

	var out []insight.SalaryRange
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode salary ranges: %w", err)
	}
	*s = out
	return nil
}

type insightTableModel struct {
	ID                string           `db:"id"`
	Industry          string           `db:"industry"`
	SalaryRanges      salaryRangesJSON `db:"salary_ranges"`
	GrowthRate        float64          `db:"growth_rate"`
	DemandLevel       string           `db:"demand_level"`
	TopSkills         pq.StringArray   `db:"top_skills"`
	MarketOutlook     string           `db:"market_outlook"`
	KeyTrends         pq.StringArray   `db:"key_trends"`
	RecommendedSkills pq.StringArray   `db:"recommended_skills"`
	LastUpdated       time.Time        `db:"last_updated"`
	NextUpdate        time.Time        `db:"next_update"`
}

var insightColumns = qb.ColumnsOf(insightTableModel{})

func insightFromRow(row insightTableModel) insight.Insight {
	ranges := make([]insight.SalaryRange, 0, len(row.SalaryRanges))
	ranges = append(ranges, row.SalaryRanges...)

	return insight.Insight{
		ID:                row.ID,
		Industry:          row.Industry,
		SalaryRanges:      ranges,
		GrowthRate:        row.GrowthRate,
		DemandLevel:       insight.DemandLevel(row.DemandLevel),
		TopSkills:         fromStringArray(row.TopSkills),
		MarketOutlook:     insight.MarketOutlook(row.MarketOutlook),
		KeyTrends:         fromStringArray(row.KeyTrends),
		RecommendedSkills: fromStringArray(row.RecommendedSkills),
		LastUpdated:       row.LastUpdated,
		NextUpdate:        row.NextUpdate,
	}
}

func insightRowFrom(item insight.Insight) insightTableModel {
	return insightTableModel{
		ID:                item.ID,
		Industry:          item.Industry,
		SalaryRanges:      salaryRangesJSON(item.SalaryRanges),
		GrowthRate:        item.GrowthRate,
		DemandLevel:       string(item.DemandLevel),
		TopSkills:         stringArray(item.TopSkills),
		MarketOutlook:     string(item.MarketOutlook),
		KeyTrends:         stringArray(item.KeyTrends),
		RecommendedSkills: stringArray(item.RecommendedSkills),
		LastUpdated:       item.LastUpdated,
		NextUpdate:        item.NextUpdate,
	}
}
