package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"smartcv/matcher/internal/models"
)

// ToolEntry names a tool or platform the generic checks look for.
type ToolEntry struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// SoftSkillEntry carries its own feedback since soft-skill wording does not
// follow a template.
type SoftSkillEntry struct {
	Pattern  string `yaml:"pattern"`
	Title    string `yaml:"title"`
	Feedback string `yaml:"feedback"`
}

// GenericVocab holds the cross-cutting check vocabularies shared by every
// profession.
type GenericVocab struct {
	Tools       []ToolEntry      `yaml:"tools"`
	SoftSkills  []SoftSkillEntry `yaml:"soft_skills"`
	WeakPhrases []string         `yaml:"weak_phrases"`
	StrongVerbs []string         `yaml:"strong_verbs"`
	Buzzwords   []string         `yaml:"buzzwords"`
}

type professionRules struct {
	Name  string               `yaml:"name"`
	Rules []models.KeywordRule `yaml:"rules"`
}

type ruleFile struct {
	Professions []professionRules `yaml:"professions"`
	Generic     GenericVocab      `yaml:"generic"`
}

// RuleTable is the full keyword-rule configuration, loaded once at startup
// and immutable afterwards, so unsynchronized concurrent reads are safe.
type RuleTable struct {
	professions []string
	rules       map[string][]models.KeywordRule
	generic     GenericVocab
}

func LoadRuleTable(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", path, err)
	}
	return ParseRuleTable(data)
}

func ParseRuleTable(data []byte) (*RuleTable, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule table: %w", err)
	}

	table := &RuleTable{
		rules:   make(map[string][]models.KeywordRule, len(file.Professions)),
		generic: file.Generic,
	}
	for _, p := range file.Professions {
		if p.Name == "" {
			return nil, fmt.Errorf("rule table has a profession without a name")
		}
		key := strings.ToLower(p.Name)
		if _, dup := table.rules[key]; dup {
			return nil, fmt.Errorf("duplicate profession %q in rule table", p.Name)
		}
		for _, r := range p.Rules {
			if r.Title == "" || len(r.Triggers) == 0 {
				return nil, fmt.Errorf("profession %q has a rule without title or triggers", p.Name)
			}
		}
		table.professions = append(table.professions, p.Name)
		table.rules[key] = p.Rules
	}

	return table, nil
}

// Professions returns the closed set of profession names in file order.
func (t *RuleTable) Professions() []string {
	return t.professions
}

// RulesFor returns the rule set for a profession, or nil for an unknown one.
func (t *RuleTable) RulesFor(profession string) []models.KeywordRule {
	return t.rules[strings.ToLower(strings.TrimSpace(profession))]
}

func (t *RuleTable) Generic() GenericVocab {
	return t.generic
}

// RoleEntry maps a domain keyword to plausible job titles.
type RoleEntry struct {
	Keyword string   `yaml:"keyword"`
	Titles  []string `yaml:"titles"`
}

type roleFile struct {
	Roles []RoleEntry `yaml:"roles"`
}

// RoleCatalog is the ordered keyword-to-titles mapping, loaded once at
// startup and immutable afterwards.
type RoleCatalog struct {
	entries []RoleEntry
}

func LoadRoleCatalog(path string) (*RoleCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read role catalog %s: %w", path, err)
	}
	return ParseRoleCatalog(data)
}

func ParseRoleCatalog(data []byte) (*RoleCatalog, error) {
	var file roleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse role catalog: %w", err)
	}
	for _, e := range file.Roles {
		if e.Keyword == "" || len(e.Titles) == 0 {
			return nil, fmt.Errorf("role catalog has an entry without keyword or titles")
		}
	}
	return &RoleCatalog{entries: file.Roles}, nil
}

func (c *RoleCatalog) Entries() []RoleEntry {
	return c.entries
}
