package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/handlers"
	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/services"
)

type fixedClassifier struct {
	prediction services.Prediction
}

func (f fixedClassifier) Classify(context.Context, string) (*services.Prediction, error) {
	p := f.prediction
	return &p, nil
}

type fixedZeroShot struct{}

func (fixedZeroShot) ClassifyZeroShot(_ context.Context, _ string, labels []string) (*services.ZeroShotPrediction, error) {
	return &services.ZeroShotPrediction{Labels: labels, Scores: []float64{0.9, 0.1, 0}}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	bundle := &services.ClassifierBundle{
		Fluency:   fixedClassifier{services.Prediction{Label: services.AcceptableLabel, Score: 0.97}},
		Grammar:   fixedClassifier{services.Prediction{Label: services.AcceptableLabel, Score: 0.97}},
		Sentiment: fixedClassifier{services.Prediction{Label: services.PositiveLabel, Score: 0.99}},
		Relevance: fixedZeroShot{},
	}
	require.NoError(t, bundle.Probe(context.Background()))

	cfg := &config.Config{
		Transcript: config.TranscriptConfig{UploadPath: t.TempDir(), MaxFileSize: 1 << 20},
		Evaluation: config.EvaluationConfig{FailureStatus: 200},
	}

	evaluateHandler := handlers.NewEvaluationHandler(services.NewEvaluatorService(bundle), cfg.Evaluation.FailureStatus)
	transcriptHandler := handlers.NewTranscriptHandler(
		evaluateHandler,
		services.NewStorageService(cfg.Transcript.UploadPath),
		services.NewPDFParserService(),
		cfg.Transcript.MaxFileSize,
	)

	return NewApp(cfg, evaluateHandler, transcriptHandler)
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEvaluateEndToEnd(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/evaluate", "/api/v1/evaluate"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(
			`{"question": "Why should we hire you?", "answer": "I ship reliable software and I enjoy hard problems."}`,
		))
		req.Header.Set("Content-Type", "application/json")

		resp := do(t, app, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(handlers.HeaderEvaluationID))

		var body models.EvaluateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		// 9 words: 6 + 9/20 rounds to 6
		assert.Equal(t, models.ScoreSet{
			Fluency:      10,
			Relevance:    10,
			Confidence:   8,
			Grammar:      10,
			Completeness: 6,
		}, body.ScoreSet)
		assert.Equal(t, "Answer could be more complete. Delivery is confident.", body.Feedback)
	}
}
