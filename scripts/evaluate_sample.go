package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/services"
)

// Usage: go run ./scripts/evaluate_sample.go ["question" "answer"]
func main() {
	log.Info("🚀 Starting sample evaluation...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()

	classifiers, err := services.LoadClassifiers(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load classifiers: %v", err)
	}
	evaluator := services.NewEvaluatorService(classifiers)

	samples := []models.EvaluateRequest{
		{
			Question: "Tell me about yourself.",
			Answer: "My name is Dana and I am currently a backend engineer. I love building reliable systems, " +
				"and my goal is to grow into a staff engineer role.",
		},
		{
			Question: "Tell me about a time you worked on a difficult project.",
			Answer: "When our payments service kept timing out, my task was to find the cause. I implemented " +
				"connection pooling and the result was a 40 percent drop in latency.",
		},
		{
			Question: "Why should we hire you?",
			Answer:   "I bring strong distributed systems experience and I learn quickly.",
		},
	}
	if len(os.Args) == 3 {
		samples = []models.EvaluateRequest{{Question: os.Args[1], Answer: os.Args[2]}}
	}

	failCount := 0
	for _, sample := range samples {
		log.Infof("📝 Question: %s", sample.Question)
		log.Infof("   Type: %s", services.ClassifyQuestion(sample.Question))

		result := evaluator.EvaluateAnswer(ctx, sample.Question, sample.Answer)
		if !result.Succeeded() {
			log.Errorf("   ❌ %s: %s", result.Failure.Reason, result.Failure.Details)
			failCount++
			continue
		}

		out, _ := json.MarshalIndent(models.NewEvaluateResponse(result), "   ", "  ")
		fmt.Printf("   %s\n", out)

		log.Info("   Commentary:")
		for _, sentence := range services.AxisCommentary(result.Scores) {
			log.Infof("   - %s", sentence)
		}
	}

	log.Info(strings.Repeat("=", 60))
	log.Infof("📊 Evaluated %d samples, %d failed", len(samples), failCount)

	if failCount > 0 {
		os.Exit(1)
	}
}
