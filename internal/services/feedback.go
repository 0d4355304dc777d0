package services

import (
	"sort"
	"strings"

	"alfredoptarigan/interview-evaluator/internal/models"
)

// band holds the sentences for the high, middle and low score bands of an
// axis. A score lands in the first band whose threshold it reaches.
type band struct {
	high, mid            int
	onHigh, onMid, onLow string
}

func (b band) pick(score int) string {
	switch {
	case score >= b.high:
		return b.onHigh
	case score >= b.mid:
		return b.onMid
	default:
		return b.onLow
	}
}

var commentaryBands = map[models.Axis]band{
	models.AxisFluency: {8, 5,
		"Excellent fluency with smooth delivery.",
		"Good fluency overall, some minor improvements possible.",
		"Fluency needs work - practice speaking more naturally."},
	models.AxisRelevance: {9, 6,
		"Highly relevant answer that addresses the question well.",
		"Mostly relevant but could be more focused on the question.",
		"Answer strays from the question - stay more on topic."},
	models.AxisConfidence: {8, 5,
		"Confident tone that makes a strong impression.",
		"Moderate confidence - try to project more assurance.",
		"Lacks confidence - work on speaking with more conviction."},
	models.AxisGrammar: {9, 7,
		"Perfect grammar usage.",
		"Mostly good grammar with minor issues.",
		"Several grammar mistakes - review and practice."},
	models.AxisCompleteness: {9, 6,
		"Comprehensive answer covering all aspects.",
		"Good answer but could be more complete.",
		"Incomplete answer - expand on your points."},
}

var summaryBands = map[models.Axis]band{
	models.AxisFluency: {8, 5,
		"Fluency is excellent.",
		"Fluency could be slightly improved.",
		"Fluency needs significant improvement."},
	models.AxisRelevance: {9, 6,
		"Answer is highly relevant.",
		"Answer could be more relevant.",
		"Answer lacks relevance to the question."},
	models.AxisConfidence: {8, 5,
		"Delivery is confident.",
		"Could show more confidence.",
		"Lacks confidence in delivery."},
	models.AxisGrammar: {9, 7,
		"Grammar is perfect.",
		"Minor grammar issues.",
		"Grammar needs improvement."},
	models.AxisCompleteness: {9, 6,
		"Answer is very complete.",
		"Answer could be more complete.",
		"Answer is incomplete."},
}

const (
	weakestAxesInFeedback = 2
	maxFeedbackSentences  = 3
)

// AxisCommentary returns one sentence per axis, in reporting order.
func AxisCommentary(scores models.ScoreSet) []string {
	commentary := make([]string, 0, len(models.Axes))
	for _, axis := range models.Axes {
		commentary = append(commentary, commentaryBands[axis].pick(scores.Get(axis)))
	}
	return commentary
}

// WeakestAxes orders the axes by ascending score. Equal scores keep
// reporting order.
func WeakestAxes(scores models.ScoreSet) []models.Axis {
	axes := make([]models.Axis, len(models.Axes))
	copy(axes, models.Axes)

	sort.SliceStable(axes, func(i, j int) bool {
		return scores.Get(axes[i]) < scores.Get(axes[j])
	})
	return axes
}

// GenerateFeedback summarises the two lowest-scoring axes.
func GenerateFeedback(scores models.ScoreSet) string {
	weakest := WeakestAxes(scores)
	if len(weakest) > weakestAxesInFeedback {
		weakest = weakest[:weakestAxesInFeedback]
	}

	sentences := make([]string, 0, len(weakest))
	for _, axis := range weakest {
		sentences = append(sentences, summaryBands[axis].pick(scores.Get(axis)))
	}

	if len(sentences) > maxFeedbackSentences {
		sentences = sentences[:maxFeedbackSentences]
	}
	return strings.Join(sentences, " ")
}
