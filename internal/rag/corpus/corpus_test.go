package corpus

import (
	"strings"
	"testing"

	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/internal/domain/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *portfolio.Profile {
	return &portfolio.Profile{
		Name:     "Jane Doe",
		Title:    "Backend Engineer",
		Location: "Lisbon",
		Summary:  "Builds Go services",
		Education: &portfolio.Education{
			School: "Tech U", Degree: "BSc CS", Period: "2010-2014",
		},
		Skills: []portfolio.SkillCategory{
			{ID: "cloud", Category: "Cloud", Items: []string{"AWS", "GCP"}},
			{Category: "Data Stores", Items: []string{"Redis"}},
		},
		Projects: []portfolio.Project{
			{ID: "pipeline", Title: "Pipeline", Summary: "Events", Stack: []string{"AWS Lambda"},
				Metrics: []portfolio.Metric{{Label: "Latency", Value: "2s"}, {Label: "Cost", Value: "-40%"}}, Featured: true},
			{ID: "hidden", Title: "Hidden", Featured: false},
			{ID: "repo-only", Title: "Repo Only", Repo: "https://github.com/jane/repo-only", Featured: true},
		},
		Experience: []portfolio.Experience{
			{ID: "acme", Role: "Engineer", Company: "Acme", Period: "2020-now", Summary: "APIs"},
		},
	}
}

func ids(docs []commonModels.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Id
	}
	return out
}

func TestBuild_OrderAndIds(t *testing.T) {
	repos := []portfolio.Repo{{Name: "tool", FullName: "jane/tool", URL: "https://github.com/jane/tool", Language: "Go"}}
	resume := commonModels.Document{Id: commonModels.ResumeId, Source: "Résumé", URL: "/resume", Text: "cv"}

	docs := Build(sampleProfile(), repos, resume)

	assert.Equal(t, []string{
		"profile",
		"education",
		"skills-cloud",
		"skills-data-stores",
		"project-pipeline",
		"project-repo-only",
		"experience-acme",
		"repo-jane/tool",
		"resume",
	}, ids(docs))
}

func TestBuild_TextSynthesis(t *testing.T) {
	docs := Build(sampleProfile(), nil)
	byID := map[string]commonModels.Document{}
	for _, d := range docs {
		byID[d.Id] = d
	}

	project := byID["project-pipeline"]
	assert.Contains(t, project.Text, "Summary: Events")
	assert.Contains(t, project.Text, "Metrics: Latency: 2s; Cost: -40%")
	assert.Equal(t, "#projects", project.URL)
	assert.Equal(t, "https://github.com/jane/repo-only", byID["project-repo-only"].URL)

	exp := byID["experience-acme"]
	assert.True(t, strings.HasPrefix(exp.Text, "Engineer at Acme (2020-now)."), exp.Text)
	assert.Equal(t, "Experience: Engineer at Acme", exp.Source)
	assert.Equal(t, "#experience", exp.URL)

	assert.Contains(t, byID["skills-cloud"].Text, "AWS, GCP")
}

func TestBuild_MissingOptionalFields(t *testing.T) {
	p := &portfolio.Profile{Name: "Solo", Experience: []portfolio.Experience{{ID: "x"}}}
	docs := Build(p, []portfolio.Repo{{FullName: "solo/empty"}})

	require.Len(t, docs, 3)
	assert.Equal(t, []string{"profile", "experience-x", "repo-solo/empty"}, ids(docs))
	assert.Contains(t, docs[1].Text, "Problem: . Solution: .")
	assert.Equal(t, "#projects", docs[2].URL)
}

func TestBuild_NilProfile(t *testing.T) {
	assert.Empty(t, Build(nil, nil))
}
