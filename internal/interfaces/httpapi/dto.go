package httpapi

import (
	"time"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/riskibarqy/career-coach/internal/domain/insight"
	"github.com/riskibarqy/career-coach/internal/domain/resume"
	"github.com/riskibarqy/career-coach/internal/domain/user"
)

type updateProfileRequest struct {
	Industry   string   `json:"industry" validate:"required,max=100"`
	Experience int      `json:"experience" validate:"min=0,max=50"`
	Bio        string   `json:"bio" validate:"max=500"`
	Skills     []string `json:"skills" validate:"max=50,dive,max=100"`
}

type saveResumeRequest struct {
	Content string `json:"content" validate:"required"`
}

type generateCoverLetterRequest struct {
	JobTitle       string `json:"job_title" validate:"required,max=200"`
	CompanyName    string `json:"company_name" validate:"required,max=200"`
	JobDescription string `json:"job_description" validate:"required,max=20000"`
}

type profileDTO struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url,omitempty"`
	Industry   string   `json:"industry,omitempty"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills"`
	Onboarded  bool     `json:"onboarded"`
	UpdatedAt  string   `json:"updated_at"`
}

type onboardingStatusDTO struct {
	IsOnboarded bool `json:"is_onboarded"`
}

type salaryRangeDTO struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

type insightDTO struct {
	Industry          string           `json:"industry"`
	SalaryRanges      []salaryRangeDTO `json:"salary_ranges"`
	GrowthRate        float64          `json:"growth_rate"`
	DemandLevel       string           `json:"demand_level"`
	TopSkills         []string         `json:"top_skills"`
	MarketOutlook     string           `json:"market_outlook"`
	KeyTrends         []string         `json:"key_trends"`
	RecommendedSkills []string         `json:"recommended_skills"`
	LastUpdated       string           `json:"last_updated"`
	NextUpdate        string           `json:"next_update"`
}

type resumeDTO struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	ATSScore  *float64 `json:"ats_score,omitempty"`
	Feedback  string   `json:"feedback,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type coverLetterDTO struct {
	ID             string `json:"id"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	JobDescription string `json:"job_description,omitempty"`
	Content        string `json:"content,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func profileToDTO(v user.Profile) profileDTO {
	skills := v.Skills
	if skills == nil {
		skills = []string{}
	}
	return profileDTO{
		ID:         v.ID,
		Email:      v.Email,
		Name:       v.Name,
		ImageURL:   v.ImageURL,
		Industry:   v.Industry,
		Experience: v.Experience,
		Bio:        v.Bio,
		Skills:     skills,
		Onboarded:  v.Onboarded(),
		UpdatedAt:  formatTime(v.UpdatedAt),
	}
}

func insightToDTO(v insight.Insight) insightDTO {
	ranges := make([]salaryRangeDTO, 0, len(v.SalaryRanges))
	for _, item := range v.SalaryRanges {
		ranges = append(ranges, salaryRangeDTO(item))
	}
	return insightDTO{
		Industry:          v.Industry,
		SalaryRanges:      ranges,
		GrowthRate:        v.GrowthRate,
		DemandLevel:       string(v.DemandLevel),
		TopSkills:         nonNil(v.TopSkills),
		MarketOutlook:     string(v.MarketOutlook),
		KeyTrends:         nonNil(v.KeyTrends),
		RecommendedSkills: nonNil(v.RecommendedSkills),
		LastUpdated:       formatTime(v.LastUpdated),
		NextUpdate:        formatTime(v.NextUpdate),
	}
}

func resumeToDTO(v resume.Resume) resumeDTO {
	return resumeDTO{
		ID:        v.ID,
		Content:   v.Content,
		ATSScore:  v.ATSScore,
		Feedback:  v.Feedback,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

// coverLetterToDTO omits the body and job description in list views.
func coverLetterToDTO(v coverletter.CoverLetter, full bool) coverLetterDTO {
	out := coverLetterDTO{
		ID:          v.ID,
		JobTitle:    v.JobTitle,
		CompanyName: v.CompanyName,
		Status:      string(v.Status),
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
	if full {
		out.JobDescription = v.JobDescription
		out.Content = v.Content
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
