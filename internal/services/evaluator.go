package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
)

const EvaluationErrorReason = "An error occurred during evaluation"

var errEmptyPrediction = errors.New("classifier returned no prediction")

// RelevanceLabels are the zero-shot candidates, in the order they are sent.
var RelevanceLabels = []string{"relevant", "somewhat relevant", "irrelevant"}

type EvaluatorService interface {
	EvaluateAnswer(ctx context.Context, question, answer string) models.EvaluationResult
}

type evaluatorService struct {
	classifiers *ClassifierBundle
}

func NewEvaluatorService(classifiers *ClassifierBundle) EvaluatorService {
	return &evaluatorService{classifiers: classifiers}
}

// EvaluateAnswer implements EvaluatorService. The first failing step fails
// the whole evaluation.
func (e *evaluatorService) EvaluateAnswer(ctx context.Context, question, answer string) models.EvaluationResult {
	evalID := uuid.NewString()
	log.Infof("🔄 Starting evaluation %s", evalID)

	scores, err := e.score(ctx, question, answer)
	if err != nil {
		log.Errorf("❌ Evaluation %s failed: %v", evalID, err)
		return models.EvaluationResult{
			ID: evalID,
			Failure: &models.EvaluationFailure{
				Reason:  EvaluationErrorReason,
				Details: err.Error(),
			},
		}
	}

	log.Infof("✅ Evaluation %s completed: %+v", evalID, scores)
	return models.EvaluationResult{
		ID:       evalID,
		Scores:   scores,
		Feedback: GenerateFeedback(scores),
	}
}

func (e *evaluatorService) score(ctx context.Context, question, answer string) (models.ScoreSet, error) {
	var scores models.ScoreSet
	var err error

	if scores.Fluency, err = e.evaluateFluency(ctx, answer); err != nil {
		return scores, fmt.Errorf("failed to evaluate fluency: %w", err)
	}
	if scores.Relevance, err = e.evaluateRelevance(ctx, question, answer); err != nil {
		return scores, fmt.Errorf("failed to evaluate relevance: %w", err)
	}
	if scores.Confidence, err = e.evaluateConfidence(ctx, answer); err != nil {
		return scores, fmt.Errorf("failed to evaluate confidence: %w", err)
	}
	if scores.Grammar, err = e.evaluateGrammar(ctx, answer); err != nil {
		return scores, fmt.Errorf("failed to evaluate grammar: %w", err)
	}
	scores.Completeness = CompletenessScore(question, answer)

	return scores, nil
}

func (e *evaluatorService) evaluateFluency(ctx context.Context, answer string) (int, error) {
	prediction, err := e.classifiers.Fluency.Classify(ctx, answer)
	if err != nil {
		return 0, err
	}
	if prediction == nil {
		return 0, errEmptyPrediction
	}
	return AcceptabilityScore(*prediction), nil
}

func (e *evaluatorService) evaluateGrammar(ctx context.Context, answer string) (int, error) {
	prediction, err := e.classifiers.Grammar.Classify(ctx, answer)
	if err != nil {
		return 0, err
	}
	if prediction == nil {
		return 0, errEmptyPrediction
	}
	return AcceptabilityScore(*prediction), nil
}

func (e *evaluatorService) evaluateConfidence(ctx context.Context, answer string) (int, error) {
	prediction, err := e.classifiers.Sentiment.Classify(ctx, answer)
	if err != nil {
		return 0, err
	}
	if prediction == nil {
		return 0, errEmptyPrediction
	}
	return ConfidenceScore(*prediction, wordCount(answer)), nil
}

func (e *evaluatorService) evaluateRelevance(ctx context.Context, question, answer string) (int, error) {
	prediction, err := e.classifiers.Relevance.ClassifyZeroShot(ctx, question+" [SEP] "+answer, RelevanceLabels)
	if err != nil {
		return 0, err
	}
	if prediction == nil {
		return 0, errEmptyPrediction
	}
	return RelevanceScore(*prediction)
}

// AcceptabilityScore maps an acceptability prediction to [0, 10]. The
// probability is flipped when the classifier picked the unacceptable label.
func AcceptabilityScore(p Prediction) int {
	prob := p.Score
	if p.Label != AcceptableLabel {
		prob = 1 - prob
	}
	return min(10, round(prob*10))
}

// ConfidenceScore blends sentiment with answer length. Negative sentiment
// is scaled by 6 instead of 10, so it tops out at 6.
func ConfidenceScore(p Prediction, words int) int {
	lengthFactor := math.Min(1, float64(words)/30)

	if p.Label == PositiveLabel {
		return min(10, round((p.Score*0.7+lengthFactor*0.3)*10))
	}
	return min(10, round(((1-p.Score)*0.7+lengthFactor*0.3)*6))
}

func RelevanceScore(p ZeroShotPrediction) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	probs := make(map[string]float64, len(p.Labels))
	for i, label := range p.Labels {
		probs[label] = p.Scores[i]
	}

	relevant, ok := probs["relevant"]
	if !ok {
		return 0, fmt.Errorf("zero-shot result is missing label %q", "relevant")
	}
	somewhat, ok := probs["somewhat relevant"]
	if !ok {
		return 0, fmt.Errorf("zero-shot result is missing label %q", "somewhat relevant")
	}

	return round((relevant*1.0 + somewhat*0.6) * 10), nil
}

// round rounds half to even.
func round(x float64) int {
	return int(math.RoundToEven(x))
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
