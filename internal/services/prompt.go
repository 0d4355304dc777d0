package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFluencyPrompt asks for a CoLA-style acceptability judgement focused on flow.
func (pb *PromptBuilder) BuildFluencyPrompt(text string) string {
	return pb.buildAcceptabilityPrompt(text, "reads naturally and fluently, as a native speaker would say it")
}

// BuildGrammarPrompt asks for a CoLA-style acceptability judgement focused on grammar.
func (pb *PromptBuilder) BuildGrammarPrompt(text string) string {
	return pb.buildAcceptabilityPrompt(text, "is grammatically well-formed")
}

func (pb *PromptBuilder) buildAcceptabilityPrompt(text, criterion string) string {
	return fmt.Sprintf(`You are a linguistic acceptability classifier.

Decide whether the following text %s.

TEXT:
%s

Return your response in the following JSON format:
{
  "label": "<%s if acceptable, LABEL_0 if not>",
  "score": <probability of the chosen label, 0-1>
}`, criterion, text, AcceptableLabel)
}

// BuildSentimentPrompt asks for a binary sentiment judgement.
func (pb *PromptBuilder) BuildSentimentPrompt(text string) string {
	return fmt.Sprintf(`You are a binary sentiment classifier.

Classify the sentiment of the following text.

TEXT:
%s

Return your response in the following JSON format:
{
  "label": "<%s or NEGATIVE>",
  "score": <probability of the chosen label, 0-1>
}`, text, PositiveLabel)
}

// BuildZeroShotPrompt asks for a probability distribution over candidate labels.
func (pb *PromptBuilder) BuildZeroShotPrompt(sequence string, candidateLabels []string) string {
	quoted := make([]string, len(candidateLabels))
	for i, label := range candidateLabels {
		quoted[i] = fmt.Sprintf("%q", label)
	}

	return fmt.Sprintf(`You are a zero-shot text classifier.

The input is an interview question and the candidate's answer separated by [SEP].
Assign a probability to each candidate label describing how the answer relates to the question.
The probabilities must sum to 1.

CANDIDATE LABELS:
[%s]

INPUT:
%s

Return your response in the following JSON format, labels ordered from most to least likely:
{
  "labels": [<candidate labels>],
  "scores": [<probabilities in the same order>]
}`, strings.Join(quoted, ", "), sequence)
}
