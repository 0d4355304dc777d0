package services

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/interview-evaluator/internal/config"
)

// Labels emitted by the acceptability and sentiment classifiers.
const (
	AcceptableLabel = "LABEL_1"
	PositiveLabel   = "POSITIVE"
)

// Prediction is the top label of a single-text classification.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ZeroShotPrediction pairs candidate labels and scores positionally.
type ZeroShotPrediction struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// zeroShotSumTolerance absorbs rounding in scores that should sum to 1.
const zeroShotSumTolerance = 0.01

// Validate checks that labels and scores pair up and that the scores form a
// probability distribution over the candidates.
func (p ZeroShotPrediction) Validate() error {
	if len(p.Labels) != len(p.Scores) {
		return fmt.Errorf("zero-shot result has %d labels and %d scores", len(p.Labels), len(p.Scores))
	}

	var sum float64
	for i, score := range p.Scores {
		if score < 0 || score > 1 {
			return fmt.Errorf("zero-shot score for %q out of range: %v", p.Labels[i], score)
		}
		sum += score
	}
	if sum > 1+zeroShotSumTolerance {
		return fmt.Errorf("zero-shot scores sum to %v", sum)
	}

	return nil
}

type TextClassifier interface {
	Classify(ctx context.Context, text string) (*Prediction, error)
}

type ZeroShotClassifier interface {
	ClassifyZeroShot(ctx context.Context, sequence string, candidateLabels []string) (*ZeroShotPrediction, error)
}

// ClassifierBundle is built once at startup and shared read-only by every
// evaluation.
type ClassifierBundle struct {
	Fluency   TextClassifier
	Grammar   TextClassifier
	Sentiment TextClassifier
	Relevance ZeroShotClassifier
}

const probeText = "I am ready for the interview."

// LoadClassifiers builds the bundle for the configured backend and probes
// every classifier once. Any failure means the service must not start.
func LoadClassifiers(ctx context.Context, cfg *config.Config) (*ClassifierBundle, error) {
	var (
		bundle *ClassifierBundle
		err    error
	)

	switch cfg.Classifier.Backend {
	case config.BackendHuggingFace:
		bundle = NewHuggingFaceBundle(cfg.HuggingFace.BaseURL, cfg.HuggingFace.APIToken, cfg.Classifier)
	case config.BackendGemini:
		bundle, err = NewGeminiBundle(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Classifier.Timeout)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown classifier backend: %q", cfg.Classifier.Backend)
	}

	if err := bundle.Probe(ctx); err != nil {
		return nil, err
	}

	log.Infof("✅ Classifiers loaded (backend: %s)", cfg.Classifier.Backend)
	return bundle, nil
}

// Probe issues one call against each classifier.
func (b *ClassifierBundle) Probe(ctx context.Context) error {
	if b.Fluency == nil || b.Grammar == nil || b.Sentiment == nil || b.Relevance == nil {
		return fmt.Errorf("classifier bundle is incomplete")
	}

	single := []struct {
		name       string
		classifier TextClassifier
	}{
		{"fluency", b.Fluency},
		{"grammar", b.Grammar},
		{"sentiment", b.Sentiment},
	}
	for _, c := range single {
		if _, err := c.classifier.Classify(ctx, probeText); err != nil {
			return fmt.Errorf("failed to load %s classifier: %w", c.name, err)
		}
		log.Infof("🧠 %s classifier ready", c.name)
	}

	if _, err := b.Relevance.ClassifyZeroShot(ctx, probeText, RelevanceLabels); err != nil {
		return fmt.Errorf("failed to load relevance classifier: %w", err)
	}
	log.Info("🧠 relevance classifier ready")

	return nil
}
