package lm

// Smoothing computes a back-off-mixed probability for a candidate
// word given a history, per spec.md §4.2. Both flavours mix
// estimates across every order m in [1, trie.Order()].
type Smoothing interface {
	Probability(trie *NGramTrie, history []WordId, word WordId, vocabSize int) float64
	Name() string
}

// context returns the last m-1 elements of history (or all of it, if
// shorter), the slice used to estimate the order-m component.
func context(history []WordId, m int) []WordId {
	k := m - 1
	if k <= 0 {
		return nil
	}
	if k >= len(history) {
		return history
	}
	return history[len(history)-k:]
}

// WittenBellI is the Witten-Bell-I smoothing scheme.
type WittenBellI struct{}

func (WittenBellI) Name() string { return "witten-bell-i" }

func (WittenBellI) Probability(trie *NGramTrie, history []WordId, word WordId, vocabSize int) float64 {
	p := 1.0 / float64(vocabSize)
	order := trie.Order()
	for m := 1; m <= order; m++ {
		h := context(history, m)
		ngram := append(append([]WordId{}, h...), word)
		c, _ := trie.GetNode(ngram)
		cs := trie.SumChildCounts(h)
		n1prx := trie.GetN1prx(h)

		var pml, lambda float64
		denom := float64(cs) + float64(n1prx)
		if denom > 0 {
			pml = float64(c) / float64(cs)
			lambda = float64(n1prx) / denom
		} else {
			pml = 0
			lambda = 1
		}
		p = lambda*p + (1-lambda)*pml
	}
	return p
}

// AbsoluteDiscountI is the absolute-discounting-I smoothing scheme,
// with a per-level discount (Discounts[level], level = m-1). A
// default of 0.75 is used for any level beyond the configured slice.
type AbsoluteDiscountI struct {
	Discounts []float64
}

const defaultDiscount = 0.75

func (a AbsoluteDiscountI) discountFor(level int) float64 {
	if level < len(a.Discounts) {
		return a.Discounts[level]
	}
	return defaultDiscount
}

func (AbsoluteDiscountI) Name() string { return "absolute-discount-i" }

func (a AbsoluteDiscountI) Probability(trie *NGramTrie, history []WordId, word WordId, vocabSize int) float64 {
	p := 1.0 / float64(vocabSize)
	order := trie.Order()
	for m := 1; m <= order; m++ {
		h := context(history, m)
		ngram := append(append([]WordId{}, h...), word)
		c, _ := trie.GetNode(ngram)
		cs := trie.SumChildCounts(h)
		n1prx := trie.GetN1prx(h)
		d := a.discountFor(m - 1)

		var pml, lambda float64
		if cs > 0 {
			discounted := float64(c) - d
			if discounted < 0 {
				discounted = 0
			}
			pml = discounted / float64(cs)
			lambda = d * float64(n1prx) / float64(cs)
		} else {
			pml = 0
			lambda = 1
		}
		p = lambda*p + pml
	}
	return p
}
