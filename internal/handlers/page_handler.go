package handlers

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"smartcv/matcher/internal/models"
	"smartcv/matcher/internal/services"
)

// PageHandler serves the single-page upload form, the only UI this service
// has.
type PageHandler struct {
	analyzer    services.AnalyzerService
	table       *services.RuleTable
	maxFileSize int64
	tmpl        *template.Template
}

func NewPageHandler(
	analyzer services.AnalyzerService,
	table *services.RuleTable,
	maxFileSize int64,
) *PageHandler {
	return &PageHandler{
		analyzer:    analyzer,
		table:       table,
		maxFileSize: maxFileSize,
		tmpl:        template.Must(template.New("index").Parse(indexTemplate)),
	}
}

type pageData struct {
	Professions    []string
	JobDescription string
	Profession     string
	Error          string
	Result         *models.AnalysisResult
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, pageData{Professions: h.table.Professions()})
}

// HandleSubmit handles POST /
func (h *PageHandler) HandleSubmit(c *fiber.Ctx) error {
	data := pageData{
		Professions:    h.table.Professions(),
		JobDescription: strings.TrimSpace(c.FormValue("job_description")),
		Profession:     strings.TrimSpace(c.FormValue("profession")),
	}

	if data.JobDescription == "" {
		data.Error = "Please paste a job description."
		return h.render(c, data)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		data.Error = "Please upload a CV file."
		return h.render(c, data)
	}
	if fileHeader.Size > h.maxFileSize {
		data.Error = "The CV file is too large."
		return h.render(c, data)
	}

	fileData, err := readUpload(fileHeader)
	if err != nil {
		data.Error = "The CV file could not be read."
		return h.render(c, data)
	}

	result, err := h.analyzer.Analyze(c.UserContext(), fileData, fileHeader.Filename, data.JobDescription, data.Profession)
	if err != nil {
		if userFacing(err) {
			data.Error = err.Error()
		} else {
			log.Printf("analysis failed: %v", err)
			data.Error = "Something went wrong while analyzing your CV. Please try again."
		}
		return h.render(c, data)
	}

	data.Result = result
	return h.render(c, data)
}

func (h *PageHandler) render(c *fiber.Ctx, data pageData) error {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Smart CV Matcher</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <meta charset="UTF-8">
    <style>
        body { font-family: sans-serif; max-width: 800px; margin: auto; padding: 20px; line-height: 1.6; }
        textarea, select, input[type=file] { width: 100%; padding: 10px; margin: 10px 0; }
        button { padding: 10px 20px; font-size: 16px; cursor: pointer; }
        ul { padding-left: 20px; }
        .error { color: #b00020; }
    </style>
</head>
<body>
    <h2>Smart CV Matcher</h2>
    <form method="post" enctype="multipart/form-data">
        <p><textarea name="job_description" rows="6" placeholder="Paste job description here..." required>{{.JobDescription}}</textarea></p>
        <p><select name="profession">
            <option value="">Any profession</option>
            {{range .Professions}}<option value="{{.}}" {{if eq . $.Profession}}selected{{end}}>{{.}}</option>{{end}}
        </select></p>
        <p><input type="file" name="resume" accept=".pdf,.docx" required></p>
        <p><button type="submit">Upload &amp; Match</button></p>
    </form>
    {{if .Result}}
        <h3>Match Score: {{.Result.Score}}%</h3>
        <p><strong>Summary:</strong> {{.Result.Summary}}</p>
        {{if .Result.Roles}}
            <h4>Potential Roles That Align With This Profile</h4>
            <ul>{{range .Result.Roles}}<li>{{.}}</li>{{end}}</ul>
        {{end}}
        {{if .Result.Suggestions}}
            <h4>Suggestions to Improve Your CV</h4>
            <ul>
            {{range .Result.Suggestions}}
                <li><strong>{{.Title}}</strong>: {{.Feedback}}{{if .Example}} <em>Example: {{.Example}}</em>{{end}}</li>
            {{end}}
            </ul>
        {{else}}
            <p>You're covering most of what the job requires. Fine-tune your language and achievements.</p>
        {{end}}
    {{else if .Error}}
        <p class="error"><strong>Error:</strong> {{.Error}}</p>
    {{end}}
</body>
</html>
`
