package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/portfolio/internal/domain/commonModels"
	"github.com/akolanti/portfolio/pkg/logger_i"
)

const (
	maxSectionSize = 1000
	sectionOverlap = 150
	resumeSource   = "Résumé"
	resumeURL      = "/resume"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger *logger_i.Logger

// ExtractResume reads a PDF, DOCX, ODT, RTF or plain text résumé and returns it as corpus documents.
// The first section has id "resume"; further sections are "resume-2", "resume-3" and so on.
func ExtractResume(path string) ([]commonModels.Document, error) {
	logger = logger_i.NewLogger("resume_ingest")
	docType := getDocType(path)
	if docType == commonModels.ERR {
		return nil, fmt.Errorf("unsupported resume format: %s", filepath.Ext(path))
	}

	pages, err := extractText(path, docType)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, p := range pages {
		if c := collapseWhitespace(p.Content); c != "" {
			texts = append(texts, c)
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("resume %s has no extractable text", filepath.Base(path))
	}

	sections := splitTextIntoChunks(strings.Join(texts, " "), maxSectionSize, sectionOverlap)
	docs := make([]commonModels.Document, 0, len(sections))
	for i, s := range sections {
		id := commonModels.ResumeId
		if i > 0 {
			id = fmt.Sprintf("%s-%d", commonModels.ResumeId, i+1)
		}
		docs = append(docs, commonModels.Document{Id: id, Source: resumeSource, URL: resumeURL, Text: s})
	}
	logger.Info("Resume ingested", "file", filepath.Base(path), "pages", len(pages), "sections", len(docs))
	return docs, nil
}

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	separators := []string{". ", " "}
	splitChar := ""
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			break
		}
	}
	if splitChar == "" {
		var chunks []string
		for len(text) > limit {
			cut := runeBoundary(text, limit)
			chunks = append(chunks, text[:cut])
			text = text[cut:]
		}
		return append(chunks, text)
	}

	var chunks []string
	var current strings.Builder
	for _, part := range strings.Split(text, splitChar) {
		if current.Len()+len(part)+len(splitChar) > limit && current.Len() > 0 {
			chunks = append(chunks, current.String())

			tail := ""
			if current.Len() > overlap {
				tail = overlapTail(current.String(), overlap)
			}
			current.Reset()
			current.WriteString(tail)
		}
		if current.Len() > 0 {
			current.WriteString(splitChar)
		}
		current.WriteString(part)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// overlapTail returns roughly the last n bytes of s, starting on a word boundary.
func overlapTail(s string, n int) string {
	tail := s[runeBoundary(s, len(s)-n):]
	if i := strings.IndexByte(tail, ' '); i >= 0 {
		return strings.TrimSpace(tail[i:])
	}
	return tail
}

// runeBoundary moves i back to the start of the rune it falls in.
func runeBoundary(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		//a single rune wider than the limit; keep it whole
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return i
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func getDocType(docPath string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(docPath)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt", ".md":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX, commonModels.TXT:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
