// Package retrieval implements the lexical question → document matching used by the chat assistant.
package retrieval

import (
	"strings"
)

// punctuation that is turned into whitespace before matching
const punctuation = ".,!?;:()[]{}\"'`/\\|<>@#$%^&*=~"

var punctuationReplacer = newPunctuationReplacer()

func newPunctuationReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(punctuation)*2)
	for _, r := range punctuation {
		pairs = append(pairs, string(r), " ")
	}
	return strings.NewReplacer(pairs...)
}

// Normalize lowercases, strips punctuation and collapses whitespace. It is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctuationReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize returns the distinct whitespace-separated tokens of the normalized text.
func Tokenize(s string) []string {
	fields := strings.Fields(Normalize(s))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// Expand tokenizes the question and adds the aliases of every token that is a synonym key.
// Aliases are not expanded again.
func Expand(question string) []string {
	base := Tokenize(question)
	seen := make(map[string]struct{}, len(base))
	out := make([]string, 0, len(base))
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	for _, t := range base {
		add(t)
	}
	for _, t := range base {
		for _, alias := range Synonyms[t] {
			add(alias)
		}
	}
	return out
}
