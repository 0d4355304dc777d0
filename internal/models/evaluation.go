package models

type QuestionType string

const (
	QuestionIntroductory QuestionType = "introductory"
	QuestionExperience   QuestionType = "experience"
	QuestionMotivational QuestionType = "motivational"
	QuestionGeneral      QuestionType = "general"
)

// Axis names one of the five scored dimensions of an answer.
type Axis string

const (
	AxisFluency      Axis = "fluency"
	AxisRelevance    Axis = "relevance"
	AxisConfidence   Axis = "confidence"
	AxisGrammar      Axis = "grammar"
	AxisCompleteness Axis = "completeness"
)

// Axes lists every axis in reporting order. Ties in feedback ranking are
// broken by this order.
var Axes = []Axis{
	AxisFluency,
	AxisRelevance,
	AxisConfidence,
	AxisGrammar,
	AxisCompleteness,
}

// ScoreSet holds the five integer scores, each in [0, 10].
type ScoreSet struct {
	Fluency      int `json:"fluency"`
	Relevance    int `json:"relevance"`
	Confidence   int `json:"confidence"`
	Grammar      int `json:"grammar"`
	Completeness int `json:"completeness"`
}

// Get returns the score recorded for axis.
func (s ScoreSet) Get(axis Axis) int {
	switch axis {
	case AxisFluency:
		return s.Fluency
	case AxisRelevance:
		return s.Relevance
	case AxisConfidence:
		return s.Confidence
	case AxisGrammar:
		return s.Grammar
	case AxisCompleteness:
		return s.Completeness
	default:
		return 0
	}
}

type EvaluationFailure struct {
	Reason  string
	Details string
}

// EvaluationResult is either a full set of scores with feedback or a
// failure. There is no partial result.
type EvaluationResult struct {
	ID       string
	Scores   ScoreSet
	Feedback string
	Failure  *EvaluationFailure
}

func (r EvaluationResult) Succeeded() bool {
	return r.Failure == nil
}
