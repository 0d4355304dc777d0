package services

import (
	"math"
	"regexp"
	"strings"

	"alfredoptarigan/interview-evaluator/internal/models"
)

var questionKeywords = []struct {
	questionType models.QuestionType
	keywords     []string
}{
	{models.QuestionIntroductory, []string{"tell me about yourself", "introduce yourself", "who are you"}},
	{models.QuestionExperience, []string{"experience", "worked on", "did you", "tell me about a time"}},
	{models.QuestionMotivational, []string{"why should we hire you", "why this role", "why our company"}},
}

var (
	introductoryComponents = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(my name is|i am)\s+[\p{L}\p{N}_]+`),
		regexp.MustCompile(`(?i)(currently|recently|presently)`),
		regexp.MustCompile(`(?i)(passion|interest|love|enjoy)`),
		regexp.MustCompile(`(?i)(goal|objective|aspire|want to)`),
	}

	// Situation, task, action, result.
	experienceComponents = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(situation|context|when|where)`),
		regexp.MustCompile(`(?i)(task|responsibility|goal)`),
		regexp.MustCompile(`(?i)(action|did|implemented|worked)`),
		regexp.MustCompile(`(?i)(result|outcome|achieved|impact)`),
	}
)

// ClassifyQuestion returns the first question type whose keywords appear in
// the lower-cased question.
func ClassifyQuestion(question string) models.QuestionType {
	question = strings.ToLower(question)

	for _, entry := range questionKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(question, keyword) {
				return entry.questionType
			}
		}
	}

	return models.QuestionGeneral
}

// CompletenessScore estimates whether the answer covers the components
// expected for its question type. Motivational questions get the general
// baseline.
func CompletenessScore(question, answer string) int {
	words := float64(wordCount(answer))

	var completeness float64
	switch ClassifyQuestion(question) {
	case models.QuestionIntroductory:
		components := float64(countMatches(introductoryComponents, answer))
		completeness = math.Min(10, components*2.5+math.Min(4, words/15))
	case models.QuestionExperience:
		components := float64(countMatches(experienceComponents, answer))
		completeness = math.Min(10, components*2+math.Min(5, words/20))
	default:
		completeness = math.Min(10, 6+math.Min(4, words/20))
	}

	return round(completeness)
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	count := 0
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			count++
		}
	}
	return count
}
