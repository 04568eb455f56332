package risk

import (
	"context"
	"log"
	"time"

	"riskwatch/internal/model"
)

// Subject identifies who is being assessed, for alert text
type Subject struct {
	ID   string
	Name string
}

// Engine runs the risk pipeline: probability, tier, attribution, alert.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	classifier Classifier
	explainer  Explainer
	notifier   Notifier
}

// NewEngine wires the pipeline stages. notifier may be nil.
func NewEngine(c Classifier, e Explainer, n Notifier) *Engine {
	return &Engine{classifier: c, explainer: e, notifier: n}
}

// NewEngineFromForest builds classifier and explainer over the same artifact
func NewEngineFromForest(f *Forest, w HeuristicWeights, n Notifier) *Engine {
	return NewEngine(NewClassifier(f, w), NewExplainer(f), n)
}

// ModelBacked reports whether scores come from a trained artifact
func (e *Engine) ModelBacked() bool {
	return e.classifier.ModelBacked()
}

// Assess scores fv. The feature vector must already be validated.
func (e *Engine) Assess(ctx context.Context, fv model.FeatureVector, subject Subject) *model.RiskAssessment {
	p := e.classifier.Probability(fv)
	tier := TierFor(p)

	source := model.SourceHeuristic
	if e.classifier.ModelBacked() {
		source = model.SourceModel
	}

	a := &model.RiskAssessment{
		StudentID:    subject.ID,
		Probability:  p,
		Tier:         tier,
		Attributions: e.explainer.Explain(fv),
		Source:       source,
		Features:     fv,
		CreatedAt:    time.Now().UTC(),
	}

	if ShouldAlert(tier) {
		a.AlertTriggered = true
		a.AlertMessage = InterventionMessage(subject.Name)
		alert := NewAlert(model.AlertIntervention, subject.ID, subject.Name, a.AlertMessage)
		if err := Emit(ctx, e.notifier, alert); err != nil {
			log.Printf("[Risk] Notification failed for %s: %v", subject.Name, err)
		}
	}

	return a
}
