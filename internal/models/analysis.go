package models

// Format is the declared document format of an uploaded CV.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Suggestion is a single actionable piece of CV feedback.
type Suggestion struct {
	Title    string `json:"title"`
	Feedback string `json:"feedback"`
	Example  string `json:"example,omitempty"`
}

// KeywordRule fires when any trigger matches the job description and none of
// the cv terms match the CV. CVTerms defaults to Triggers when empty.
type KeywordRule struct {
	Title    string   `yaml:"title"`
	Triggers []string `yaml:"triggers"`
	CVTerms  []string `yaml:"cv_terms,omitempty"`
	Weight   int      `yaml:"weight"`
	Feedback string   `yaml:"feedback"`
	Example  string   `yaml:"example,omitempty"`
}

// AnalysisResult is the full outcome of matching one CV against one job
// description. It is never partially populated.
type AnalysisResult struct {
	ID          string       `json:"id"`
	Score       float64      `json:"score"`
	Summary     string       `json:"summary"`
	Roles       []string     `json:"roles"`
	Suggestions []Suggestion `json:"suggestions"`
	Profession  string       `json:"profession,omitempty"`
}
