package gemini

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/career-coach/internal/domain/coverletter"
	"github.com/valyala/bytebufferpool"
)

const insightSchema = `{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}`

func insightPrompt(industry string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Analyze the current state of the ")
	_, _ = buf.WriteString(industry)
	_, _ = buf.WriteString(" industry and provide insights in ONLY the following JSON format without any additional notes or explanations:\n")
	_, _ = buf.WriteString(insightSchema)
	_, _ = buf.WriteString("\n\nIMPORTANT: Return ONLY the JSON. No additional text, notes, or markdown formatting.\n")
	_, _ = buf.WriteString("Include at least 5 common roles for salary ranges.\n")
	_, _ = buf.WriteString("Growth rate should be a percentage.\n")
	_, _ = buf.WriteString("Include at least 5 skills and trends.\n")
	return buf.String()
}

func coverLetterPrompt(req coverletter.Request) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(parts ...string) {
		for _, part := range parts {
			_, _ = buf.WriteString(part)
		}
		_ = buf.WriteByte('\n')
	}

	line("Write a professional cover letter for a ", req.JobTitle, " position at ", req.CompanyName, ".")
	line()
	line("About the candidate:")
	line("- Industry: ", orUnknown(req.Industry))
	line("- Years of Experience: ", strconv.Itoa(req.Experience))
	line("- Skills: ", orUnknown(strings.Join(req.Skills, ", ")))
	line("- Professional Background: ", orUnknown(req.Bio))
	line()
	line("Job Description:")
	line(req.JobDescription)
	line()
	line("Requirements:")
	line("1. Use a professional, enthusiastic tone")
	line("2. Highlight relevant skills and experience")
	line("3. Show understanding of the company's needs")
	line("4. Keep it concise (max 400 words)")
	line("5. Use proper business letter formatting in markdown")
	line("6. Include specific examples of achievements")
	line("7. Relate candidate's background to job requirements")
	line()
	line("Format the letter in markdown.")
	return buf.String()
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not provided"
	}
	return value
}
