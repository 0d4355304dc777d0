package models

type EvaluateRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type EvaluateResponse struct {
	ScoreSet
	Feedback string `json:"feedback"`
}

type EvaluationErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func NewEvaluateResponse(result EvaluationResult) EvaluateResponse {
	return EvaluateResponse{
		ScoreSet: result.Scores,
		Feedback: result.Feedback,
	}
}

func NewEvaluationErrorResponse(failure EvaluationFailure) EvaluationErrorResponse {
	return EvaluationErrorResponse{
		Error:   failure.Reason,
		Details: failure.Details,
	}
}
