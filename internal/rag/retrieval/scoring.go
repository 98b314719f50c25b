package retrieval

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/portfolio/internal/config"
	"github.com/akolanti/portfolio/internal/domain/commonModels"
)

const (
	minTokenLength  = 2
	longTokenLength = 5
	longTokenScore  = 3
	shortTokenScore = 2
	experienceBoost = 2
	projectBoost    = 1
)

// Score counts the tokens found in the normalized document text, weighted by token length in characters,
// plus a flat boost for experience and project documents.
func Score(doc commonModels.Document, tokens []string) int {
	text := Normalize(doc.Text)
	score := 0
	for _, t := range tokens {
		n := utf8.RuneCountInString(t)
		if n < minTokenLength {
			continue
		}
		if !strings.Contains(text, t) {
			continue
		}
		if n >= longTokenLength {
			score += longTokenScore
		} else {
			score += shortTokenScore
		}
	}

	switch {
	case strings.HasPrefix(doc.Id, commonModels.ExperiencePrefix):
		score += experienceBoost
	case strings.HasPrefix(doc.Id, commonModels.ProjectPrefix):
		score += projectBoost
	}
	return score
}

// Select ranks docs by score (ties keep corpus order), keeps the top limit and drops zero scores.
func Select(docs []commonModels.Document, tokens []string, limit int) []commonModels.ScoredDocument {
	scored := make([]commonModels.ScoredDocument, 0, len(docs))
	for _, d := range docs {
		scored = append(scored, commonModels.ScoredDocument{Doc: d, Score: Score(d, tokens)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	out := scored[:0]
	for _, s := range scored {
		if s.Score > 0 {
			out = append(out, s)
		}
	}
	return out
}

// BuildContext renders the selected documents as the grounding block for the model.
func BuildContext(selected []commonModels.ScoredDocument) string {
	if len(selected) == 0 {
		return config.NoContextPlaceholder
	}
	var b strings.Builder
	for i, s := range selected {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] Source: %s\nURL: %s\n%s", i+1, s.Doc.Source, s.Doc.URL, s.Doc.Text)
	}
	return b.String()
}

// Citations lists the source and url of at most max selected documents.
func Citations(selected []commonModels.ScoredDocument, max int) []commonModels.Citation {
	out := make([]commonModels.Citation, 0, max)
	for _, s := range selected {
		if len(out) == max {
			break
		}
		out = append(out, commonModels.Citation{Source: s.Doc.Source, URL: s.Doc.URL})
	}
	return out
}
