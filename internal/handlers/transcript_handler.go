package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/interview-evaluator/internal/services"
)

// TranscriptHandler evaluates an answer uploaded as a PDF transcript.
type TranscriptHandler struct {
	evaluation     *EvaluationHandler
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewTranscriptHandler(
	evaluation *EvaluationHandler,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *TranscriptHandler {
	return &TranscriptHandler{
		evaluation:     evaluation,
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleEvaluateTranscript handles POST /api/v1/evaluate/transcript
func (h *TranscriptHandler) HandleEvaluateTranscript(c *fiber.Ctx) error {
	question := c.FormValue("question")
	answerFile, err := c.FormFile("answer")

	if question == "" || err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMissingFields,
		})
	}

	if answerFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Transcript file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filePath, err := h.storageService.SaveFile(answerFile, "transcript")
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Transcript must be a PDF file",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save transcript: %v", err),
		})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filePath); err != nil {
			log.Warnf("⚠️  Failed to remove transcript %s: %v", filePath, err)
		}
	}()

	transcript, err := h.pdfParser.ExtractTranscript(filePath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read transcript: %v", err),
		})
	}

	log.Infof("📄 Transcript parsed: %d pages", transcript.PageCount)
	return h.evaluation.respond(c, question, transcript.Text)
}
