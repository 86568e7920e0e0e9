package lm

import "testing"

func buildPredictFixture() *DynamicModel {
	m := newTestModel(2)
	m.LearnTokens([]string{"the", "cat", "sat"}, true)
	m.LearnTokens([]string{"the", "cat", "ran"}, true)
	m.LearnTokens([]string{"the", "dog", "sat"}, true)
	return m
}

func TestPredictSortsDescendingByProbability(t *testing.T) {
	m := buildPredictFixture()
	results := m.Predict([]string{"the", ""}, -1, 0)
	if len(results) < 2 {
		t.Fatalf("expected multiple candidates, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Probability > results[i-1].Probability {
			t.Errorf("results not sorted descending at index %d: %v > %v", i, results[i].Probability, results[i-1].Probability)
		}
	}
}

func TestPredictRespectsPrefix(t *testing.T) {
	m := buildPredictFixture()
	results := m.Predict([]string{"the", "c"}, -1, 0)
	for _, r := range results {
		w := m.Dictionary.IdToWord(r.Word)
		if len(w) == 0 || w[0] != 'c' {
			t.Errorf("Predict with prefix %q returned %q", "c", w)
		}
	}
	if len(results) == 0 {
		t.Errorf("expected at least one candidate for prefix %q", "c")
	}
}

func TestPredictRespectsLimit(t *testing.T) {
	m := buildPredictFixture()
	all := m.Predict([]string{"the", ""}, -1, 0)
	if len(all) < 2 {
		t.Fatalf("need at least 2 candidates to test truncation, got %d", len(all))
	}
	limited := m.Predict([]string{"the", ""}, 1, 0)
	if len(limited) != 1 {
		t.Errorf("Predict with limit=1 returned %d results", len(limited))
	}
	if limited[0] != all[0] {
		t.Errorf("Predict with limit=1 returned %v; want first of unlimited %v", limited[0], all[0])
	}
}

func TestPredictNormalizeSumsToOne(t *testing.T) {
	m := buildPredictFixture()
	results := m.Predict([]string{"the", ""}, -1, NORMALIZE)
	var sum float64
	for _, r := range results {
		sum += r.Probability
	}
	if diff := sum - 1.0; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("normalized probabilities sum to %v; want 1.0", sum)
	}
}

func TestPredictExcludesControlWordsByDefault(t *testing.T) {
	m := buildPredictFixture()
	results := m.Predict([]string{""}, -1, 0)
	for _, r := range results {
		if r.Word < numControlWords {
			t.Errorf("Predict returned control word id %d without INCLUDE_CONTROL_WORDS", r.Word)
		}
	}
}

func TestStableSortByProbabilityDescIsStableOnTies(t *testing.T) {
	results := []PredictResult{{Word: 0, Probability: 1}, {Word: 1, Probability: 1}, {Word: 2, Probability: 2}}
	stableSortByProbabilityDesc(results)
	if results[0].Word != 2 {
		t.Errorf("expected highest-probability entry first, got %v", results)
	}
	if results[1].Word != 0 || results[2].Word != 1 {
		t.Errorf("equal-probability entries were reordered: %v", results)
	}
}
