package lm

import "testing"

// buildMergeComponents returns two models sharing one Dictionary, as
// MergedModel's per-WordId accumulation requires (spec.md §4.4).
func buildMergeComponents() (*DynamicModel, *DynamicModel) {
	a := newTestModel(1)
	a.LearnTokens([]string{"cat"}, true)
	a.LearnTokens([]string{"cat"}, true)
	a.LearnTokens([]string{"dog"}, true)

	b := &DynamicModel{Dictionary: a.Dictionary, Trie: NewNGramTrie(1), Smoothing: WittenBellI{}, order: 1}
	b.AssureValidControlWords()
	b.LearnTokens([]string{"dog"}, true)
	b.LearnTokens([]string{"dog"}, true)
	b.LearnTokens([]string{"cat"}, true)
	return a, b
}

func TestMergedModelOverlayLastWins(t *testing.T) {
	a, b := buildMergeComponents()
	mm := &MergedModel{Components: []Predictor{a, b}, Policy: OverlayPolicy{}}

	results := mm.Predict([]string{""}, -1, 0)
	byWord := map[string]float64{}
	for _, r := range results {
		byWord[mm.Dict().IdToWord(r.Word)] = r.Probability
	}
	bOnlyResults := b.Predict([]string{""}, -1, 0)
	for _, r := range bOnlyResults {
		w := b.Dictionary.IdToWord(r.Word)
		if byWord[w] != r.Probability {
			t.Errorf("overlay probability for %q = %v; want b's own %v (last wins)", w, byWord[w], r.Probability)
		}
	}
}

func TestMergedModelLinearInterpWeightsSum(t *testing.T) {
	a, b := buildMergeComponents()
	mm := &MergedModel{
		Components: []Predictor{a, b},
		Policy:     LinearInterpPolicy{Weights: []float64{1, 1}},
	}
	results := mm.Predict([]string{""}, -1, NORMALIZE)
	var sum float64
	for _, r := range results {
		sum += r.Probability
	}
	if diff := sum - 1.0; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("linear-interp normalized probabilities sum to %v; want 1.0", sum)
	}
}

func TestMergedModelProbabilityAveragesComponents(t *testing.T) {
	a, b := buildMergeComponents()
	mm := &MergedModel{
		Components: []Predictor{a, b},
		Policy:     LinearInterpPolicy{Weights: []float64{1, 1}},
	}
	cat := a.Dictionary.WordToId("cat")
	pa := a.Probability(nil, cat)
	pb := b.Probability(nil, cat)
	got := mm.Probability(nil, cat)
	want := (pa + pb) / 2
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("MergedModel.Probability(cat) = %v; want %v", got, want)
	}
}

func TestMergedModelLogLinearInterpIsNonNegative(t *testing.T) {
	a, b := buildMergeComponents()
	mm := &MergedModel{
		Components: []Predictor{a, b},
		Policy:     LogLinearInterpPolicy{Weights: []float64{0.5, 0.5}},
	}
	results := mm.Predict([]string{""}, -1, 0)
	for _, r := range results {
		if r.Probability < 0 {
			t.Errorf("log-linear-interp probability %v < 0", r.Probability)
		}
	}
}

func TestMergedModelEmptyComponents(t *testing.T) {
	mm := &MergedModel{Policy: OverlayPolicy{}}
	if got := mm.Predict([]string{""}, -1, 0); got != nil {
		t.Errorf("Predict on empty MergedModel = %v; want nil", got)
	}
	if d := mm.Dict(); d != nil {
		t.Errorf("Dict() on empty MergedModel = %v; want nil", d)
	}
}
