package agent

import (
	"github.com/CoolBanHub/minghe/assessment"
	"github.com/CoolBanHub/minghe/crisis"
	"github.com/CoolBanHub/minghe/intent"
	"github.com/CoolBanHub/minghe/metrics"
	"github.com/CoolBanHub/minghe/strategy"
)

type Option func(*Agent)

func WithDetector(detector *crisis.Detector) Option {
	return func(agent *Agent) {
		agent.detector = detector
	}
}

func WithClassifier(classifier *intent.Classifier) Option {
	return func(agent *Agent) {
		agent.classifier = classifier
	}
}

func WithStrategies(strategies *strategy.Registry) Option {
	return func(agent *Agent) {
		agent.strategies = strategies
	}
}

func WithAssessmentEngine(engine *assessment.Engine) Option {
	return func(agent *Agent) {
		agent.assessments = engine
	}
}

func WithAssessmentHistory(history *assessment.History) Option {
	return func(agent *Agent) {
		agent.history = history
	}
}

func WithEmotionLexicon(lexicon []intent.EmotionLexicon) Option {
	return func(agent *Agent) {
		agent.emotions = lexicon
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(agent *Agent) {
		agent.metrics = m
	}
}
