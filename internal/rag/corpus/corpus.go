// Package corpus flattens the structured profile into retrievable documents.
package corpus

import (
	"fmt"
	"strings"

	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
)

const (
	aboutAnchor      = "#about"
	educationAnchor  = "#education"
	skillsAnchor     = "#skills"
	projectsAnchor   = "#projects"
	experienceAnchor = "#experience"
	repoPlaceholder  = "#projects"
)

// Build produces, in order: the profile summary, education, one document per skill category,
// one per featured project, one per experience entry, one per repo, then extras.
func Build(profile *portfolio.Profile, repos []portfolio.Repo, extras ...commonModels.Document) []commonModels.Document {
	var docs []commonModels.Document
	if profile != nil {
		docs = append(docs, profileDoc(profile))
		if profile.Education != nil {
			docs = append(docs, educationDoc(profile.Education))
		}
		for _, s := range profile.Skills {
			docs = append(docs, skillDoc(s))
		}
		for _, p := range profile.FeaturedProjects() {
			docs = append(docs, projectDoc(p))
		}
		for _, e := range profile.Experience {
			docs = append(docs, experienceDoc(e))
		}
	}
	for _, r := range repos {
		docs = append(docs, repoDoc(r))
	}
	return append(docs, extras...)
}

func profileDoc(p *portfolio.Profile) commonModels.Document {
	return commonModels.Document{
		Id:     commonModels.ProfilePrefix,
		Source: "Profile",
		URL:    aboutAnchor,
		Text: fmt.Sprintf("%s, %s based in %s. Summary: %s. Links: %s %s %s",
			p.Name, p.Title, p.Location, p.Summary, p.Website, p.GitHub, p.LinkedIn),
	}
}

func educationDoc(e *portfolio.Education) commonModels.Document {
	return commonModels.Document{
		Id:     commonModels.EducationPrefix,
		Source: "Education",
		URL:    educationAnchor,
		Text:   fmt.Sprintf("%s at %s (%s). %s", e.Degree, e.School, e.Period, e.Details),
	}
}

func skillDoc(s portfolio.SkillCategory) commonModels.Document {
	id := s.ID
	if id == "" {
		id = slug(s.Category)
	}
	return commonModels.Document{
		Id:     commonModels.SkillsPrefix + id,
		Source: "Skills: " + s.Category,
		URL:    skillsAnchor,
		Text:   fmt.Sprintf("%s skills: %s", s.Category, strings.Join(s.Items, ", ")),
	}
}

func projectDoc(p portfolio.Project) commonModels.Document {
	url := p.URL
	if url == "" {
		url = p.Repo
	}
	if url == "" {
		url = projectsAnchor
	}
	return commonModels.Document{
		Id:     commonModels.ProjectPrefix + p.ID,
		Source: "Project: " + p.Title,
		URL:    url,
		Text: fmt.Sprintf("%s. Summary: %s. Problem: %s. Solution: %s. Stack: %s. Metrics: %s",
			p.Title, p.Summary, p.Problem, p.Solution, strings.Join(p.Stack, ", "), metrics(p.Metrics)),
	}
}

func experienceDoc(e portfolio.Experience) commonModels.Document {
	return commonModels.Document{
		Id:     commonModels.ExperiencePrefix + e.ID,
		Source: fmt.Sprintf("Experience: %s at %s", e.Role, e.Company),
		URL:    experienceAnchor,
		Text: fmt.Sprintf("%s at %s (%s). Summary: %s. Problem: %s. Solution: %s. Stack: %s. Metrics: %s",
			e.Role, e.Company, e.Period, e.Summary, e.Problem, e.Solution, strings.Join(e.Stack, ", "), metrics(e.Metrics)),
	}
}

func repoDoc(r portfolio.Repo) commonModels.Document {
	url := r.URL
	if url == "" {
		url = repoPlaceholder
	}
	return commonModels.Document{
		Id:     commonModels.RepoPrefix + r.FullName,
		Source: "GitHub: " + r.Name,
		URL:    url,
		Text: fmt.Sprintf("Repository %s. Description: %s. Language: %s. Topics: %s",
			r.FullName, r.Description, r.Language, strings.Join(r.Topics, ", ")),
	}
}

func metrics(ms []portfolio.Metric) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, m.Label+": "+m.Value)
	}
	return strings.Join(parts, "; ")
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
