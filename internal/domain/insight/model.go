package insight

import (
	"fmt"
	"strings"
	"time"
)

// RefreshInterval is how long a generated insight stays current.
const RefreshInterval = 7 * 24 * time.Hour

type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandLow    DemandLevel = "LOW"
)

type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "POSITIVE"
	OutlookNeutral  MarketOutlook = "NEUTRAL"
	OutlookNegative MarketOutlook = "NEGATIVE"
)

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Insight is the shared, per-industry market summary.
type Insight struct {
	ID                string
	Industry          string
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       DemandLevel
	TopSkills         []string
	MarketOutlook     MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
}

// Due reports whether the insight should be regenerated at now.
func (i Insight) Due(now time.Time) bool {
	return !now.Before(i.NextUpdate)
}

// Generated is the raw payload returned by an insight generator before
// normalization.
type Generated struct {
	SalaryRanges      []SalaryRange
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
}

func ParseDemandLevel(value string) (DemandLevel, error) {
	level := DemandLevel(strings.ToUpper(strings.TrimSpace(value)))
	switch level {
	case DemandHigh, DemandMedium, DemandLow:
		return level, nil
	default:
		return "", fmt.Errorf("unknown demand level %q", value)
	}
}

func ParseMarketOutlook(value string) (MarketOutlook, error) {
	outlook := MarketOutlook(strings.ToUpper(strings.TrimSpace(value)))
	switch outlook {
	case OutlookPositive, OutlookNeutral, OutlookNegative:
		return outlook, nil
	default:
		return "", fmt.Errorf("unknown market outlook %q", value)
	}
}

// Build normalizes a generated payload into an insight stamped at now.
func Build(industry string, payload Generated, now time.Time) (Insight, error) {
	demand, err := ParseDemandLevel(payload.DemandLevel)
	if err != nil {
		return Insight{}, err
	}
	outlook, err := ParseMarketOutlook(payload.MarketOutlook)
	if err != nil {
		return Insight{}, err
	}

	return Insight{
		Industry:          industry,
		SalaryRanges:      append([]SalaryRange(nil), payload.SalaryRanges...),
		GrowthRate:        payload.GrowthRate,
		DemandLevel:       demand,
		TopSkills:         cloneStrings(payload.TopSkills),
		MarketOutlook:     outlook,
		KeyTrends:         cloneStrings(payload.KeyTrends),
		RecommendedSkills: cloneStrings(payload.RecommendedSkills),
		LastUpdated:       now,
		NextUpdate:        now.Add(RefreshInterval),
	}, nil
}

func cloneStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
