package lm

import "github.com/golang/glog"

// DynamicModel is a LanguageModel that owns a Dictionary and an
// NGramTrie and supports incremental learning, ARPA persistence and
// pruning (spec.md §4.3).
type DynamicModel struct {
	Dictionary *Dictionary
	Trie       *NGramTrie
	Smoothing  Smoothing

	order int
	dirty bool
}

// NewDynamicModel creates an empty model of the given order with the
// four control words installed and given a unigram count of at least
// 1, mirroring the original library's constructor (liblm/
// lm_dynamic.cpp), which calls clear()/assure_valid_control_words()
// on construction so IsModelValid holds from the start.
func NewDynamicModel(order int, unknown, bos, eos, number string) *DynamicModel {
	m := &DynamicModel{
		Dictionary: NewDictionary(unknown, bos, eos, number),
		Trie:       NewNGramTrie(order),
		Smoothing:  WittenBellI{},
		order:      order,
	}
	m.AssureValidControlWords()
	return m
}

func (m *DynamicModel) Order() int  { return m.order }
func (m *DynamicModel) Dirty() bool { return m.dirty }
func (m *DynamicModel) MarkClean()  { m.dirty = false }

// Clone returns a structurally independent copy, used to snapshot a
// last-known-good model before a risky load (spec.md §7, §9).
func (m *DynamicModel) Clone() *DynamicModel {
	c := &DynamicModel{order: m.order, dirty: m.dirty}
	dict := *m.Dictionary
	dict.words = append([]string{}, m.Dictionary.words...)
	if m.Dictionary.sorted != nil {
		dict.sorted = append([]WordId{}, m.Dictionary.sorted...)
	}
	c.Dictionary = &dict

	c.Trie = NewNGramTrie(m.order)
	it := m.Trie.Iterate()
	for {
		ngram, count, ok := it.Next()
		if !ok {
			break
		}
		c.Trie.IncrementNodeCount(ngram, int32(count))
	}
	c.Smoothing = m.Smoothing
	return c
}

// resolveWord looks up word, adding it to the dictionary when
// allowNew is true and it is absent. Returns WORD_UNKNOWN when the
// word is unknown and may not be added.
func (m *DynamicModel) resolveWord(word string, allowNew bool) WordId {
	if id := m.Dictionary.WordToId(word); id != NONE {
		return id
	}
	if allowNew {
		return m.Dictionary.AddWord(word)
	}
	return WORD_UNKNOWN
}

// LearnTokens extracts every n-gram of length 1..order from tokens
// and increments their counts. New words are admitted subject to
// allowNewWords; when a word cannot be admitted it is counted as
// WORD_UNKNOWN. Marks the model dirty.
func (m *DynamicModel) LearnTokens(tokens []string, allowNewWords bool) {
	if len(tokens) == 0 {
		return
	}
	ids := make([]WordId, len(tokens))
	for i, tok := range tokens {
		ids[i] = m.resolveWord(tok, allowNewWords)
	}
	for end := 0; end < len(ids); end++ {
		for n := 1; n <= m.order && n <= end+1; n++ {
			m.Trie.IncrementNodeCount(ids[end-n+1:end+1], 1)
		}
	}
	m.dirty = true
}

// CountNgram directly updates the count of an n-gram of up to order
// words, admitting any new words encountered. Unigrams reached this
// way are the same path set_unigrams uses during ARPA load.
func (m *DynamicModel) CountNgram(words []string, inc int32) uint32 {
	ids := make([]WordId, len(words))
	for i, w := range words {
		ids[i] = m.resolveWord(w, true)
	}
	m.dirty = true
	return m.Trie.IncrementNodeCount(ids, inc)
}

// RemoveContext removes every n-gram whose rightmost segment equals
// context: it scans all n-grams first (so the iterator is never
// invalidated by mutation), then applies the compensating negative
// increments in a second pass.
func (m *DynamicModel) RemoveContext(context []string) {
	ctxIds := make([]WordId, len(context))
	for i, w := range context {
		id := m.Dictionary.WordToId(w)
		if id == NONE {
			return
		}
		ctxIds[i] = id
	}

	var toRemove [][]WordId
	it := m.Trie.Iterate()
	for {
		ngram, _, ok := it.Next()
		if !ok {
			break
		}
		if hasSuffix(ngram, ctxIds) {
			toRemove = append(toRemove, append([]WordId{}, ngram...))
		}
	}
	for _, ngram := range toRemove {
		count, found := m.Trie.GetNode(ngram)
		if found && count > 0 {
			m.Trie.IncrementNodeCount(ngram, -int32(count))
		}
	}
	m.dirty = true
}

func hasSuffix(ngram, suffix []WordId) bool {
	if len(suffix) == 0 {
		return true
	}
	if len(ngram) < len(suffix) {
		return false
	}
	offset := len(ngram) - len(suffix)
	for i, w := range suffix {
		if ngram[offset+i] != w {
			return false
		}
	}
	return true
}

// AssureValidControlWords guarantees the four control words exist at
// fixed ids 0..3 with count >= 1, as required after a load.
func (m *DynamicModel) AssureValidControlWords() {
	for id := WordId(0); id < numControlWords; id++ {
		count, found := m.Trie.GetNode([]WordId{id})
		if !found || count == 0 {
			m.Trie.IncrementNodeCount([]WordId{id}, 1)
		}
	}
}

// Prune produces a new model whose order may be smaller: trailing
// entries of pruneCounts equal to -1 drop the order by one level each
// (spec.md §4.3). For each kept n-gram at level l (1-indexed), the
// threshold is pruneCounts[min(len(pruneCounts), l)-1]; -1 means
// never drop at that level; entries with count <= threshold are
// dropped.
func (m *DynamicModel) Prune(pruneCounts []int32) *DynamicModel {
	newOrder := m.order
	i := len(pruneCounts) - 1
	for i >= 0 && newOrder > 1 && pruneCounts[i] == -1 {
		newOrder--
		i--
	}

	out := &DynamicModel{
		Dictionary: m.Dictionary,
		Trie:       NewNGramTrie(newOrder),
		Smoothing:  m.Smoothing,
		order:      newOrder,
	}

	thresholdFor := func(l int) int32 {
		if len(pruneCounts) == 0 {
			return -1
		}
		idx := l
		if idx > len(pruneCounts) {
			idx = len(pruneCounts)
		}
		return pruneCounts[idx-1]
	}

	it := m.Trie.Iterate()
	for {
		ngram, count, ok := it.Next()
		if !ok {
			break
		}
		l := len(ngram)
		if l > newOrder {
			continue
		}
		threshold := thresholdFor(l)
		if threshold != -1 && int32(count) <= threshold {
			continue
		}
		out.Trie.IncrementNodeCount(ngram, int32(count))
	}
	out.AssureValidControlWords()
	if glog.V(1) {
		glog.Infof("lm: pruned model from order %d to %d", m.order, newOrder)
	}
	return out
}
