package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcv/matcher/internal/models"
)

// buildDOCX assembles a minimal but valid DOCX package in memory.
func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		require.NoError(t, xml.EscapeText(&body, []byte(p)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": body.String(),
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	extractor := NewExtractorService(5)

	_, err := extractor.ExtractText([]byte("plain text"), models.Format("txt"))
	require.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestExtractTextEmptyInput(t *testing.T) {
	extractor := NewExtractorService(5)

	for _, format := range []models.Format{models.FormatPDF, models.FormatDOCX} {
		_, err := extractor.ExtractText(nil, format)
		require.ErrorIs(t, err, models.ErrEmptyDocument, "format %s", format)
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	extractor := NewExtractorService(5)

	_, err := extractor.ExtractText([]byte("definitely not a pdf"), models.FormatPDF)
	require.ErrorIs(t, err, models.ErrCorruptDocument)
}

func TestExtractTextCorruptDOCX(t *testing.T) {
	extractor := NewExtractorService(5)

	_, err := extractor.ExtractText([]byte("junk bytes, not a zip"), models.FormatDOCX)
	require.ErrorIs(t, err, models.ErrCorruptDocument)
}

func TestExtractTextDOCX(t *testing.T) {
	extractor := NewExtractorService(5)

	data := buildDOCX(t, []string{
		"Built web apps using Angular & JavaScript.",
		"Improved page load by 40%.",
	})

	text, err := extractor.ExtractText(data, models.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Built web apps using Angular & JavaScript. Improved page load by 40%.", text)
}

func TestExtractTextDOCXWithoutText(t *testing.T) {
	extractor := NewExtractorService(5)

	data := buildDOCX(t, nil)

	_, err := extractor.ExtractText(data, models.FormatDOCX)
	require.ErrorIs(t, err, models.ErrEmptyDocument)
}

func TestDocxParagraphs(t *testing.T) {
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Split </w:t></w:r><w:r><w:t>across runs</w:t></w:r></w:p>` +
		`<w:p><w:pPr></w:pPr></w:p>` +
		`<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	paragraphs, err := docxParagraphs(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Split across runs", "Second paragraph"}, paragraphs)
}
