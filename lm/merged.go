package lm

import "math"

// MergePolicy implements one of the three model-composition schemes of
// spec.md §4.4: combine per-component predictions into a running
// accumulator keyed by WordId.
type MergePolicy interface {
	Name() string
	// CanLimitComponents reports whether a component may be queried
	// with the caller's limit directly. Overlay can (later components
	// simply replace earlier entries); the interpolation policies
	// cannot, since truncating a component early would silently drop
	// probability mass from the weighted sum.
	CanLimitComponents() bool
	Accumulate(acc map[WordId]float64, weight float64, r PredictResult)
	Finalize(acc map[WordId]float64)
}

func normalizedWeights(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return weights
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

// OverlayPolicy lets later components fully replace earlier ones for a
// given word ("last wins").
type OverlayPolicy struct{}

func (OverlayPolicy) Name() string                 { return "overlay" }
func (OverlayPolicy) CanLimitComponents() bool      { return true }
func (OverlayPolicy) Finalize(map[WordId]float64)   {}
func (OverlayPolicy) Accumulate(acc map[WordId]float64, weight float64, r PredictResult) {
	acc[r.Word] = r.Probability
}

// LinearInterpPolicy computes a weighted sum of component
// probabilities, p = Σ w_i·p_i (weights normalized to sum to 1).
type LinearInterpPolicy struct{ Weights []float64 }

func (LinearInterpPolicy) Name() string               { return "linear-interp" }
func (LinearInterpPolicy) CanLimitComponents() bool    { return false }
func (LinearInterpPolicy) Finalize(map[WordId]float64) {}
func (LinearInterpPolicy) Accumulate(acc map[WordId]float64, weight float64, r PredictResult) {
	acc[r.Word] += weight * r.Probability
}

// LogLinearInterpPolicy computes a weighted product of component
// probabilities, p ∝ Π p_i^w_i (weights normalized to sum to 1).
type LogLinearInterpPolicy struct{ Weights []float64 }

const logLinearFloor = 1e-12

func (LogLinearInterpPolicy) Name() string            { return "log-linear-interp" }
func (LogLinearInterpPolicy) CanLimitComponents() bool { return false }
func (LogLinearInterpPolicy) Accumulate(acc map[WordId]float64, weight float64, r PredictResult) {
	p := r.Probability
	if p < logLinearFloor {
		p = logLinearFloor
	}
	acc[r.Word] += weight * math.Log(p)
}
func (LogLinearInterpPolicy) Finalize(acc map[WordId]float64) {
	for w, logp := range acc {
		acc[w] = math.Exp(logp)
	}
}

func weightsOf(p MergePolicy) []float64 {
	switch pp := p.(type) {
	case LinearInterpPolicy:
		return pp.Weights
	case LogLinearInterpPolicy:
		return pp.Weights
	default:
		return nil
	}
}

// MergedModel composes several Predictors under a MergePolicy
// (spec.md §4.4). Components are queried in order; Overlay relies on
// that order for "last wins" semantics. Results are combined by
// WordId, so the merge is only meaningful when every component shares
// one *Dictionary; Dict returns the first component's.
type MergedModel struct {
	Components []Predictor
	Policy     MergePolicy
}

func (mm *MergedModel) Dict() *Dictionary {
	if len(mm.Components) == 0 {
		return nil
	}
	return mm.Components[0].Dict()
}

// Predict implements the merge pipeline: query every component,
// combine per-word via the policy, then sort/limit/normalize the
// merged set exactly as a single-model predict() would.
func (mm *MergedModel) Predict(context []string, limit int, options PrefixOptions) []PredictResult {
	if len(mm.Components) == 0 {
		return nil
	}
	canLimit := mm.Policy.CanLimitComponents()
	weights := normalizedWeights(weightsOf(mm.Policy))

	componentLimit := limit
	componentOptions := options
	if !canLimit {
		componentLimit = -1
		componentOptions |= NORMALIZE | NO_SORT
	}

	acc := make(map[WordId]float64)
	for i, comp := range mm.Components {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		for _, r := range comp.Predict(context, componentLimit, componentOptions) {
			mm.Policy.Accumulate(acc, w, r)
		}
	}
	mm.Policy.Finalize(acc)

	results := make([]PredictResult, 0, len(acc))
	for word, p := range acc {
		results = append(results, PredictResult{Word: word, Probability: p})
	}

	if options&NO_SORT == 0 {
		stableSortByProbabilityDesc(results)
	}
	if limit >= 0 && limit < len(results) {
		results = results[:limit]
	}
	if options&NORMALIZE != 0 {
		normalize(results)
	}
	return results
}

// Probability implements Prober for a MergedModel under
// LinearInterpPolicy, combining any component that itself implements
// Prober. Weight is renormalized over the probing components only.
func (mm *MergedModel) Probability(history []WordId, word WordId) float64 {
	lip, ok := mm.Policy.(LinearInterpPolicy)
	if !ok {
		return 0
	}
	weights := normalizedWeights(lip.Weights)
	var sum, weightSum float64
	for i, comp := range mm.Components {
		prober, ok := comp.(Prober)
		if !ok {
			continue
		}
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sum += w * prober.Probability(history, word)
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}
