package lm

import "sort"

// Extra Options bits, layered on top of the PrefixOptions bitset
// (spec.md §4.4 step 2 passes "options | NORMALIZE | NO_SORT" through
// to component predict() calls, so both families share one type).
const (
	NORMALIZE PrefixOptions = 1 << (iota + 16)
	NO_SORT
)

// PredictResult is one candidate word and its estimated probability.
type PredictResult struct {
	Word        WordId
	Probability float64
}

// Predictor is the prediction capability shared by DynamicModel,
// UnigramModel and MergedModel (spec.md §9).
type Predictor interface {
	Predict(context []string, limit int, options PrefixOptions) []PredictResult
	Dict() *Dictionary
}

// Prober additionally exposes a raw history+word probability, used by
// MergedModel's LinearInterp policy to implement get_probability.
type Prober interface {
	Probability(history []WordId, word WordId) float64
}

func (m *DynamicModel) Dict() *Dictionary { return m.Dictionary }

// Probability returns the smoothed probability of word following
// history directly, bypassing candidate selection.
func (m *DynamicModel) Probability(history []WordId, word WordId) float64 {
	return m.Smoothing.Probability(m.Trie, history, word, m.Dictionary.Len())
}

// IsModelValid reports whether the trie's distinct unigram count
// agrees with the dictionary size, mirroring the original library's
// is_model_valid() (liblm/lm_dynamic.h: "num_unigrams ==
// m_dictionary.get_num_word_types()"). A malformed or partial ARPA
// load can leave these out of sync; predicting against such a model
// would walk trie nodes for dictionary entries that were never
// learned.
func (m *DynamicModel) IsModelValid() bool {
	return m.Trie.GetNumNgrams(0) == m.Dictionary.Len()
}

// Predict implements the PredictionPipeline of spec.md §4.5.
func (m *DynamicModel) Predict(context []string, limit int, options PrefixOptions) []PredictResult {
	if len(context) == 0 || m.Trie.GetTotalNgrams(0) == 0 || !m.IsModelValid() {
		return nil
	}

	historyWords, prefix := context[:len(context)-1], context[len(context)-1]
	history := make([]WordId, len(historyWords))
	for i, w := range historyWords {
		id := m.Dictionary.WordToId(w)
		if id == NONE {
			id = WORD_UNKNOWN
		}
		history[i] = id
	}

	var candidates []WordId
	switch {
	case prefix != "":
		candidates = m.Dictionary.PrefixSearch(prefix, nil, nil, options)
	case len(history) > 0 && options&INCLUDE_CONTROL_WORDS == 0:
		candidates = m.Trie.GetChildWordIds(history[len(history)-1:], nil)
	default:
		for id := WordId(0); id < WordId(m.Dictionary.Len()); id++ {
			if id < numControlWords && options&INCLUDE_CONTROL_WORDS == 0 {
				continue
			}
			candidates = append(candidates, id)
		}
	}

	filtered := candidates[:0]
	for _, id := range candidates {
		if count, _ := m.Trie.GetNode([]WordId{id}); count > 0 {
			filtered = append(filtered, id)
		}
	}
	candidates = filtered

	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	results := make([]PredictResult, len(candidates))
	for i, id := range candidates {
		results[i] = PredictResult{Word: id, Probability: m.Probability(history, id)}
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

// stableSortByProbabilityDesc sorts results by descending probability
// using a stable insertion sort: O(n) on the already-sorted input
// that results from an unchanged context between predictions, which
// spec.md §4.5 calls out as the common case (there described as a
// "shellsort-in-place-with-stable-gap"; a plain stable insertion sort
// gives the same O(n)-on-sorted-input behaviour with a much simpler
// implementation).
func stableSortByProbabilityDesc(results []PredictResult) {
	for i := 1; i < len(results); i++ {
		v := results[i]
		j := i - 1
		for j >= 0 && results[j].Probability < v.Probability {
			results[j+1] = results[j]
			j--
		}
		results[j+1] = v
	}
}

func normalize(results []PredictResult) {
	var sum float64
	for _, r := range results {
		sum += r.Probability
	}
	if sum <= 0 {
		return
	}
	for i := range results {
		results[i].Probability /= sum
	}
}
