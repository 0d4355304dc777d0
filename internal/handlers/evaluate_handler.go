package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/services"
)

const (
	HeaderEvaluationID = "X-Evaluation-ID"

	errMissingFields  = "Both question and answer are required"
	errInvalidPayload = "Invalid request payload"
)

type EvaluationHandler struct {
	evaluator     services.EvaluatorService
	failureStatus int
}

// NewEvaluationHandler builds the handler. failureStatus is the status sent
// with an evaluation error body.
func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	failureStatus int,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator:     evaluator,
		failureStatus: failureStatus,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errInvalidPayload,
		})
	}

	if req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errMissingFields,
		})
	}

	return h.respond(c, req.Question, req.Answer)
}

func (h *EvaluationHandler) respond(c *fiber.Ctx, question, answer string) error {
	result := h.evaluator.EvaluateAnswer(c.UserContext(), question, answer)
	c.Set(HeaderEvaluationID, result.ID)

	if !result.Succeeded() {
		return c.Status(h.failureStatus).JSON(models.NewEvaluationErrorResponse(*result.Failure))
	}

	return c.JSON(models.NewEvaluateResponse(result))
}
