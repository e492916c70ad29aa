package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"smartcv/matcher/internal/models"
)

type ExtractorService interface {
	ExtractText(data []byte, format models.Format) (string, error)
}

type extractorService struct {
	pageLimit int
}

func NewExtractorService(pageLimit int) ExtractorService {
	if pageLimit <= 0 {
		pageLimit = 5
	}
	return &extractorService{pageLimit: pageLimit}
}

// ExtractText implements ExtractorService. It is a pure transformation of
// bytes to text and never touches the filesystem.
func (e *extractorService) ExtractText(data []byte, format models.Format) (string, error) {
	if len(data) == 0 {
		return "", models.ErrEmptyDocument
	}

	switch format {
	case models.FormatPDF:
		return e.extractPDF(data)
	case models.FormatDOCX:
		return e.extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)
	}
}

func (e *extractorService) extractPDF(data []byte) (text string, err error) {
	// The pdf library panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", models.ErrCorruptDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCorruptDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()
	if totalPage > e.pageLimit {
		totalPage = e.pageLimit
	}

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	text = strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", models.ErrEmptyDocument
	}
	return text, nil
}

func (e *extractorService) extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCorruptDocument, err)
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrCorruptDocument, err)
	}

	text := strings.TrimSpace(strings.Join(paragraphs, " "))
	if text == "" {
		return "", models.ErrEmptyDocument
	}
	return text, nil
}

// docxParagraphs walks the document.xml markup and collects the text runs
// (w:t) of each paragraph (w:p) in document order.
func docxParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var paragraphs []string
	var current strings.Builder
	inRun := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if p := strings.TrimSpace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				current.Reset()
			}
		}
	}

	// Text outside any closed paragraph still counts.
	if p := strings.TrimSpace(current.String()); p != "" {
		paragraphs = append(paragraphs, p)
	}

	return paragraphs, nil
}
