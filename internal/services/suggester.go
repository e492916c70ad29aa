package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"smartcv/matcher/internal/models"
)

type SuggesterService interface {
	Suggest(cvText, jdText, profession string) []models.Suggestion
}

type suggesterService struct {
	norm            *Normalizer
	table           *RuleTable
	maxSuggestions  int
	maxProfession   int
	fallbackOnEmpty bool
}

func NewSuggesterService(
	norm *Normalizer,
	table *RuleTable,
	maxSuggestions int,
	maxProfession int,
	fallbackOnEmpty bool,
) SuggesterService {
	if maxSuggestions <= 0 {
		maxSuggestions = 8
	}
	if maxProfession <= 0 {
		maxProfession = 6
	}
	return &suggesterService{
		norm:            norm,
		table:           table,
		maxSuggestions:  maxSuggestions,
		maxProfession:   maxProfession,
		fallbackOnEmpty: fallbackOnEmpty,
	}
}

// Quantified-impact patterns run against the raw CV text because
// normalization strips currency symbols.
var (
	percentPattern  = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	currencyPattern = regexp.MustCompile(`[$€£]\s*\d`)
	countPattern    = regexp.MustCompile(`(?i)\b\d[\d,]*\+?\s+(?:clients?|customers?|users?|people|projects?|teams?|members?|reports?|stores?|campaigns?|leads?|sales|downloads?|visitors?|subscribers?|employees?|accounts?|tickets?|orders?|releases?|deployments?|million|thousand|years?|months?)\b`)
)

// Suggest implements SuggesterService. Given fixed inputs the returned list
// is identical across calls: rules are walked in table order, the weight sort
// is stable, and every generic check runs in a fixed sequence.
func (s *suggesterService) Suggest(cvText, jdText, profession string) []models.Suggestion {
	cv := s.norm.Normalize(cvText)
	jd := s.norm.Normalize(jdText)

	suggestions := s.professionSuggestions(cv, jd, profession)
	suggestions = append(suggestions, s.missingTools(cv, jd)...)
	suggestions = append(suggestions, s.missingSoftSkills(cv, jd)...)
	suggestions = append(suggestions, s.weakLanguage(cv)...)
	suggestions = append(suggestions, s.missingQuantifiedImpact(cvText)...)
	suggestions = append(suggestions, s.buzzwordOveruse(cv)...)

	suggestions = dedupeByTitle(suggestions)
	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}

	if len(suggestions) == 0 && s.fallbackOnEmpty {
		suggestions = []models.Suggestion{{
			Title:    "No major gaps detected",
			Feedback: "Your CV already covers the role's main requirements. Strengthen it further with measurable results and clear outcomes.",
			Example:  "Increased organic traffic by 25% within six months.",
		}}
	}

	return suggestions
}

func (s *suggesterService) professionSuggestions(cv, jd, profession string) []models.Suggestion {
	rules := s.table.RulesFor(profession)

	type firedRule struct {
		rule  models.KeywordRule
		order int
	}
	var fired []firedRule
	for i, rule := range rules {
		if s.ruleFires(rule, cv, jd) {
			fired = append(fired, firedRule{rule: rule, order: i})
		}
	}

	// Heavier rules first; ties keep table order.
	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].rule.Weight > fired[j].rule.Weight
	})
	if len(fired) > s.maxProfession {
		fired = fired[:s.maxProfession]
	}

	suggestions := make([]models.Suggestion, 0, len(fired))
	for _, f := range fired {
		suggestions = append(suggestions, models.Suggestion{
			Title:    f.rule.Title,
			Feedback: f.rule.Feedback,
			Example:  f.rule.Example,
		})
	}
	return suggestions
}

func (s *suggesterService) ruleFires(rule models.KeywordRule, cv, jd string) bool {
	triggered := false
	for _, trigger := range rule.Triggers {
		if s.norm.Matches(trigger, jd, MatchFuzzy) {
			triggered = true
			break
		}
	}
	if !triggered {
		return false
	}

	cvTerms := rule.CVTerms
	if len(cvTerms) == 0 {
		cvTerms = rule.Triggers
	}
	for _, term := range cvTerms {
		if s.norm.Matches(term, cv, MatchFuzzy) {
			return false
		}
	}
	return true
}

func (s *suggesterService) missingTools(cv, jd string) []models.Suggestion {
	var suggestions []models.Suggestion
	for _, tool := range s.table.Generic().Tools {
		if s.norm.Matches(tool.Pattern, jd, MatchFuzzy) && !s.norm.Matches(tool.Pattern, cv, MatchFuzzy) {
			suggestions = append(suggestions, models.Suggestion{
				Title:    "Missing tool: " + tool.Name,
				Feedback: fmt.Sprintf("The job mentions %s but your CV does not. Add your experience with it if you have used it.", tool.Name),
				Example:  fmt.Sprintf("Tracked campaign performance in %s.", tool.Name),
			})
		}
	}
	return suggestions
}

func (s *suggesterService) missingSoftSkills(cv, jd string) []models.Suggestion {
	var suggestions []models.Suggestion
	for _, skill := range s.table.Generic().SoftSkills {
		if s.norm.Matches(skill.Pattern, jd, MatchFuzzy) && !s.norm.Matches(skill.Pattern, cv, MatchFuzzy) {
			suggestions = append(suggestions, models.Suggestion{
				Title:    skill.Title,
				Feedback: skill.Feedback,
			})
		}
	}
	return suggestions
}

func (s *suggesterService) weakLanguage(cv string) []models.Suggestion {
	var offending []string
	for _, phrase := range s.table.Generic().WeakPhrases {
		if s.norm.Matches(phrase, cv, MatchExact) {
			offending = append(offending, fmt.Sprintf("%q", phrase))
		}
	}
	if len(offending) == 0 {
		return nil
	}

	verbs := s.table.Generic().StrongVerbs
	example := "Led a redesign that improved conversion by 15%."
	if len(verbs) >= 3 {
		example = fmt.Sprintf("Swap them for verbs like %q, %q or %q.", verbs[0], verbs[1], verbs[2])
	}
	return []models.Suggestion{{
		Title:    "Weak language",
		Feedback: fmt.Sprintf("Your CV uses passive phrasing (%s). Replace it with strong action verbs that show ownership.", strings.Join(offending, ", ")),
		Example:  example,
	}}
}

func (s *suggesterService) missingQuantifiedImpact(rawCV string) []models.Suggestion {
	if percentPattern.MatchString(rawCV) ||
		currencyPattern.MatchString(rawCV) ||
		countPattern.MatchString(rawCV) {
		return nil
	}
	return []models.Suggestion{{
		Title:    "Missing quantified impact",
		Feedback: "Your CV has no measurable results. Add numbers that show the size of your impact: percentages, amounts or counts.",
		Example:  "Cut onboarding time by 30% for 40 clients.",
	}}
}

func (s *suggesterService) buzzwordOveruse(cv string) []models.Suggestion {
	var offending []string
	for _, word := range s.table.Generic().Buzzwords {
		if s.norm.Matches(word, cv, MatchExact) {
			offending = append(offending, fmt.Sprintf("%q", word))
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return []models.Suggestion{{
		Title:    "Buzzword overuse",
		Feedback: fmt.Sprintf("Vague buzzwords (%s) dilute your CV. Replace them with concrete skills and outcomes.", strings.Join(offending, ", ")),
		Example:  "Instead of \"go-getter\", write what you initiated and what it achieved.",
	}}
}

func dedupeByTitle(suggestions []models.Suggestion) []models.Suggestion {
	seen := make(map[string]struct{}, len(suggestions))
	out := suggestions[:0]
	for _, sg := range suggestions {
		if _, dup := seen[sg.Title]; dup {
			continue
		}
		seen[sg.Title] = struct{}{}
		out = append(out, sg)
	}
	return out
}
