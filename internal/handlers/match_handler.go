package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"smartcv/matcher/internal/models"
	"smartcv/matcher/internal/services"
)

type MatchHandler struct {
	analyzer    services.AnalyzerService
	table       *services.RuleTable
	maxFileSize int64
}

func NewMatchHandler(
	analyzer services.AnalyzerService,
	table *services.RuleTable,
	maxFileSize int64,
) *MatchHandler {
	return &MatchHandler{
		analyzer:    analyzer,
		table:       table,
		maxFileSize: maxFileSize,
	}
}

// HandleMatch handles POST /api/v1/match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	jobText := strings.TrimSpace(c.FormValue("job_description"))
	if jobText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}
	profession := strings.TrimSpace(c.FormValue("profession"))

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}
	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read resume file",
		})
	}

	result, err := h.analyzer.Analyze(c.UserContext(), data, fileHeader.Filename, jobText, profession)
	if err != nil {
		return c.Status(analysisStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleProfessions handles GET /api/v1/professions
func (h *MatchHandler) HandleProfessions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"professions": h.table.Professions(),
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// analysisStatus maps the typed analysis errors onto HTTP statuses. Anything
// unexpected is a 500.
func analysisStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrCorruptDocument),
		errors.Is(err, models.ErrEmptyDocument):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// userFacing reports whether err should be shown verbatim on the form page.
func userFacing(err error) bool {
	return analysisStatus(err) != fiber.StatusInternalServerError
}
