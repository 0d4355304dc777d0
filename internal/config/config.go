package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
)

type Config struct {
	Server      ServerConfig
	Classifier  ClassifierConfig
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
	Transcript  TranscriptConfig
	Evaluation  EvaluationConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ClassifierConfig struct {
	Backend        string
	Timeout        time.Duration
	FluencyModel   string
	GrammarModel   string
	SentimentModel string
	RelevanceModel string
}

type HuggingFaceConfig struct {
	BaseURL  string
	APIToken string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type TranscriptConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type EvaluationConfig struct {
	// FailureStatus is the HTTP status returned with an evaluation error body.
	FailureStatus int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Classifier: ClassifierConfig{
			Backend:        getEnv("CLASSIFIER_BACKEND", BackendHuggingFace),
			Timeout:        getEnvAsDuration("CLASSIFIER_TIMEOUT", "30s"),
			FluencyModel:   getEnv("FLUENCY_MODEL", "textattack/bert-base-uncased-CoLA"),
			GrammarModel:   getEnv("GRAMMAR_MODEL", "textattack/roberta-base-CoLA"),
			SentimentModel: getEnv("SENTIMENT_MODEL", "distilbert/distilbert-base-uncased-finetuned-sst-2-english"),
			RelevanceModel: getEnv("RELEVANCE_MODEL", "facebook/bart-large-mnli"),
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL:  getEnv("HF_INFERENCE_URL", "https://router.huggingface.co/hf-inference/models"),
			APIToken: getEnv("HF_API_TOKEN", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Transcript: TranscriptConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Evaluation: EvaluationConfig{
			FailureStatus: getEnvAsInt("EVALUATION_FAILURE_STATUS", 200),
		},
	}
}

// Validate reports configuration the server cannot start with.
func (c *Config) Validate() error {
	switch c.Classifier.Backend {
	case BackendHuggingFace:
		if c.HuggingFace.APIToken == "" {
			return fmt.Errorf("HF_API_TOKEN is required for the %s backend", BackendHuggingFace)
		}
		if c.HuggingFace.BaseURL == "" {
			return fmt.Errorf("HF_INFERENCE_URL must not be empty")
		}
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the %s backend", BackendGemini)
		}
	default:
		return fmt.Errorf("unknown classifier backend: %q", c.Classifier.Backend)
	}

	if c.Classifier.Timeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}

	if c.Evaluation.FailureStatus < 100 || c.Evaluation.FailureStatus > 599 {
		return fmt.Errorf("invalid EVALUATION_FAILURE_STATUS: %d", c.Evaluation.FailureStatus)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
