package lm

import "testing"

func TestUnigramModelProbabilityIsFrequencyBased(t *testing.T) {
	u := NewUnigramModel("<unk>", "<s>", "</s>", "<num>")
	u.Count("cat", 3)
	u.Count("dog", 1)

	cat := u.Dictionary.WordToId("cat")
	dog := u.Dictionary.WordToId("dog")
	if p := u.Probability(nil, cat); p != 0.75 {
		t.Errorf("Probability(cat) = %v; want 0.75", p)
	}
	if p := u.Probability(nil, dog); p != 0.25 {
		t.Errorf("Probability(dog) = %v; want 0.25", p)
	}
}

func TestUnigramModelProbabilityFallsBackForUnseenModel(t *testing.T) {
	u := NewUnigramModel("<unk>", "<s>", "</s>", "<num>")
	p := u.Probability(nil, WORD_UNKNOWN)
	want := 1.0 / float64(u.Dictionary.Len())
	if p != want {
		t.Errorf("Probability on empty model = %v; want %v", p, want)
	}
}

func TestUnigramModelPredictRanksByFrequency(t *testing.T) {
	u := NewUnigramModel("<unk>", "<s>", "</s>", "<num>")
	u.Count("cat", 5)
	u.Count("dog", 1)

	results := u.Predict([]string{""}, -1, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(results))
	}
	if u.Dictionary.IdToWord(results[0].Word) != "cat" {
		t.Errorf("highest-frequency word should rank first, got %q", u.Dictionary.IdToWord(results[0].Word))
	}
}
