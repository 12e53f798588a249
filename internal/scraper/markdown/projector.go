// Package markdown renders scraped profiles into the normalized document
// consumed by the candidate screener. The rendering is deterministic:
// identical input produces a byte-identical document.
package markdown

import (
	"fmt"
	"strings"

	"hiring-pipeline/pkg/models"
)

// Project renders a scraped profile as a normalized markdown document.
// Sections appear in fixed order and sections with no data are omitted
// entirely.
func Project(profile *models.ScrapedProfile) string {
	var lines []string

	name := profile.FullName
	if name == "" {
		name = "Unknown"
	}
	lines = append(lines, fmt.Sprintf("# %s", name), "")

	if profile.Headline != "" {
		lines = append(lines, fmt.Sprintf("**%s**", profile.Headline), "")
	}

	if profile.Location != "" {
		lines = append(lines, profile.Location, "")
	}

	if profile.Summary != "" {
		lines = append(lines, "## About", profile.Summary, "")
	}

	if len(profile.Experience) > 0 {
		lines = append(lines, "## Experience")
		for _, exp := range profile.Experience {
			title := valueOr(exp.Title, "N/A")
			company := valueOr(exp.CompanyName, "N/A")
			lines = append(lines, fmt.Sprintf("### %s @ %s", title, company))
			if exp.DateRange != "" {
				lines = append(lines, exp.DateRange)
			}
			if exp.Location != "" {
				lines = append(lines, exp.Location)
			}
			if exp.Description != "" {
				lines = append(lines, "", exp.Description)
			}
			lines = append(lines, "")
		}
	}

	if len(profile.Education) > 0 {
		lines = append(lines, "## Education")
		for _, edu := range profile.Education {
			lines = append(lines, fmt.Sprintf("### %s", valueOr(edu.SchoolName, "N/A")))
			if degree := joinDegree(edu.DegreeName, edu.FieldOfStudy); degree != "" {
				lines = append(lines, degree)
			}
			if edu.DateRange != "" {
				lines = append(lines, edu.DateRange)
			}
			lines = append(lines, "")
		}
	}

	if len(profile.Skills) > 0 {
		lines = append(lines, "## Skills", strings.Join(profile.Skills, ", "), "")
	}

	return strings.Join(lines, "\n")
}

// BuildProfile converts a scraped profile into the structured projection
// stored on the application record, including the rendered document
func BuildProfile(scraped *models.ScrapedProfile) *models.LinkedInProfile {
	profile := &models.LinkedInProfile{
		Headline:    scraped.Headline,
		Location:    scraped.Location,
		Summary:     scraped.Summary,
		Education:   make([]models.Education, 0, len(scraped.Education)),
		Experience:  make([]models.Experience, 0, len(scraped.Experience)),
		Skills:      scraped.Skills,
		RawMarkdown: Project(scraped),
	}

	for _, edu := range scraped.Education {
		profile.Education = append(profile.Education, models.Education{
			School:    valueOr(edu.SchoolName, "Unknown"),
			Degree:    edu.DegreeName,
			Field:     edu.FieldOfStudy,
			DateRange: edu.DateRange,
		})
	}

	for _, exp := range scraped.Experience {
		profile.Experience = append(profile.Experience, models.Experience{
			Company:     valueOr(exp.CompanyName, "Unknown"),
			Title:       valueOr(exp.Title, "Unknown"),
			Location:    exp.Location,
			DateRange:   exp.DateRange,
			Description: exp.Description,
		})
	}

	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	return profile
}

func joinDegree(degree, field string) string {
	parts := make([]string, 0, 2)
	if degree != "" {
		parts = append(parts, degree)
	}
	if field != "" {
		parts = append(parts, field)
	}
	return strings.Join(parts, " - ")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
