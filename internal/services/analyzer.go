package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"smartcv/matcher/internal/models"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, fileData []byte, filename, jobText, profession string) (*models.AnalysisResult, error)
}

type analyzerService struct {
	extractor     ExtractorService
	scorer        Scorer
	suggester     SuggesterService
	roleLookup    RoleLookupService
	maxTextLength int
}

func NewAnalyzerService(
	extractor ExtractorService,
	scorer Scorer,
	suggester SuggesterService,
	roleLookup RoleLookupService,
	maxTextLength int,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		scorer:        scorer,
		suggester:     suggester,
		roleLookup:    roleLookup,
		maxTextLength: maxTextLength,
	}
}

// Analyze implements AnalyzerService. Either the full result comes back or a
// single typed error; nothing is partially populated.
func (a *analyzerService) Analyze(ctx context.Context, fileData []byte, filename, jobText, profession string) (*models.AnalysisResult, error) {
	format, err := formatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	cvText, err := a.extractor.ExtractText(fileData, format)
	if err != nil {
		return nil, err
	}

	cvText = capLength(cvText, a.maxTextLength)
	jobText = capLength(strings.TrimSpace(jobText), a.maxTextLength)

	score, err := a.scorer.Score(ctx, cvText, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to score CV against job description: %w", err)
	}

	roles := a.roleLookup.SuggestTitles(jobText)
	suggestions := a.suggester.Suggest(cvText, jobText, profession)

	return &models.AnalysisResult{
		ID:          uuid.New().String(),
		Score:       score,
		Summary:     summaryFor(score, profession, len(suggestions)),
		Roles:       roles,
		Suggestions: suggestions,
		Profession:  profession,
	}, nil
}

func formatFromFilename(filename string) (models.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.FormatPDF, nil
	case ".docx":
		return models.FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, filename)
	}
}

// capLength truncates to at most max bytes without splitting a UTF-8 rune.
func capLength(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	s = s[:max]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

func summaryFor(score float64, profession string, outstanding int) string {
	var msg string
	switch {
	case score >= 85:
		msg = "Strong fit. Just polish your CV for clarity and impact."
	case score >= 70:
		msg = "Good match. You're close: refine with a few skill or tool mentions."
	case score >= 50:
		msg = "Decent alignment, but some key skills or achievements are missing."
	default:
		msg = "Significant gaps found. Rework your CV to better match this job."
	}

	if profession != "" {
		msg += fmt.Sprintf(" For %s roles, %d suggestion(s) remain outstanding.", profession, outstanding)
	}
	return msg
}
