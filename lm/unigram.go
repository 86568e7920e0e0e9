package lm

// UnigramModel is the order-1 component supplemented per spec.md §9:
// a plain frequency table with no back-off mixing, cheap enough to
// keep resident purely to provide a fallback predict() source for
// MergedModel when the dynamic model's history is empty or unknown.
type UnigramModel struct {
	Dictionary *Dictionary
	Trie       *NGramTrie
}

// NewUnigramModel returns an empty order-1 model.
func NewUnigramModel(unknown, bos, eos, number string) *UnigramModel {
	return &UnigramModel{
		Dictionary: NewDictionary(unknown, bos, eos, number),
		Trie:       NewNGramTrie(1),
	}
}

func (u *UnigramModel) Dict() *Dictionary { return u.Dictionary }

// Count adds inc to word's unigram count, admitting new words.
func (u *UnigramModel) Count(word string, inc int32) {
	id := u.Dictionary.WordToId(word)
	if id == NONE {
		id = u.Dictionary.AddWord(word)
	}
	u.Trie.IncrementNodeCount([]WordId{id}, inc)
}

// Probability is the unsmoothed maximum-likelihood unigram estimate,
// falling back to a uniform 1/|V| for unseen words.
func (u *UnigramModel) Probability(history []WordId, word WordId) float64 {
	total := u.Trie.GetTotalNgrams(0)
	if total == 0 {
		return 1.0 / float64(u.Dictionary.Len())
	}
	c, _ := u.Trie.GetNode([]WordId{word})
	if c == 0 {
		return 1.0 / float64(u.Dictionary.Len())
	}
	return float64(c) / float64(total)
}

// Predict ranks every vocabulary word (or those matching the trailing
// prefix in context) by raw unigram frequency.
func (u *UnigramModel) Predict(context []string, limit int, options PrefixOptions) []PredictResult {
	if len(context) == 0 {
		return nil
	}
	prefix := context[len(context)-1]

	var candidates []WordId
	if prefix != "" {
		candidates = u.Dictionary.PrefixSearch(prefix, nil, nil, options)
	} else {
		for id := WordId(0); id < WordId(u.Dictionary.Len()); id++ {
			if id < numControlWords && options&INCLUDE_CONTROL_WORDS == 0 {
				continue
			}
			candidates = append(candidates, id)
		}
	}

	results := make([]PredictResult, 0, len(candidates))
	for _, id := range candidates {
		if c, _ := u.Trie.GetNode([]WordId{id}); c > 0 {
			results = append(results, PredictResult{Word: id, Probability: u.Probability(nil, id)})
		}
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
