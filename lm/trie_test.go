package lm

import "testing"

func TestIncrementNodeCountBuildsPathAndTotals(t *testing.T) {
	trie := NewNGramTrie(2)
	w1, w2 := WordId(numControlWords), WordId(numControlWords+1)

	trie.IncrementNodeCount([]WordId{w1}, 3)
	if c, ok := trie.GetNode([]WordId{w1}); !ok || c != 3 {
		t.Errorf("GetNode([w1]) = (%d, %v); want (3, true)", c, ok)
	}
	trie.IncrementNodeCount([]WordId{w1, w2}, 2)
	if c, ok := trie.GetNode([]WordId{w1, w2}); !ok || c != 2 {
		t.Errorf("GetNode([w1,w2]) = (%d, %v); want (2, true)", c, ok)
	}
	if got := trie.GetTotalNgrams(0); got != 3 {
		t.Errorf("GetTotalNgrams(0) = %d; want 3", got)
	}
	if got := trie.GetTotalNgrams(1); got != 2 {
		t.Errorf("GetTotalNgrams(1) = %d; want 2", got)
	}
	if got := trie.GetNumNgrams(1); got != 1 {
		t.Errorf("GetNumNgrams(1) = %d; want 1", got)
	}
}

func TestIncrementNodeCountNegativeZeroesEntry(t *testing.T) {
	trie := NewNGramTrie(1)
	w := WordId(numControlWords)
	trie.IncrementNodeCount([]WordId{w}, 5)
	trie.IncrementNodeCount([]WordId{w}, -5)
	if c, ok := trie.GetNode([]WordId{w}); !ok || c != 0 {
		t.Errorf("GetNode after zeroing out count = (%d, %v); want (0, true) — zero-count entries are kept", c, ok)
	}
	if got := trie.GetNumNgrams(0); got != 0 {
		t.Errorf("GetNumNgrams(0) = %d; want 0", got)
	}
}

func TestIncrementNodeCountControlWordFloor(t *testing.T) {
	trie := NewNGramTrie(1)
	trie.IncrementNodeCount([]WordId{WORD_UNKNOWN}, 1)
	trie.IncrementNodeCount([]WordId{WORD_UNKNOWN}, -10)
	if c, ok := trie.GetNode([]WordId{WORD_UNKNOWN}); !ok || c != 1 {
		t.Errorf("control word count = (%d, %v); want (1, true) — must never drop below 1", c, ok)
	}
}

func TestGetChildWordIds(t *testing.T) {
	trie := NewNGramTrie(2)
	w1, w2, w3 := WordId(numControlWords), WordId(numControlWords+1), WordId(numControlWords+2)
	trie.IncrementNodeCount([]WordId{w1, w2}, 1)
	trie.IncrementNodeCount([]WordId{w1, w3}, 1)

	got := trie.GetChildWordIds([]WordId{w1}, nil)
	if len(got) != 2 {
		t.Fatalf("GetChildWordIds = %v; want 2 entries", got)
	}
	seen := map[WordId]bool{got[0]: true, got[1]: true}
	if !seen[w2] || !seen[w3] {
		t.Errorf("GetChildWordIds = %v; want {%d,%d}", got, w2, w3)
	}
}

func TestTrieIteratorVisitsEveryPositiveCountNgram(t *testing.T) {
	trie := NewNGramTrie(2)
	w1, w2, w3 := WordId(numControlWords), WordId(numControlWords+1), WordId(numControlWords+2)
	trie.IncrementNodeCount([]WordId{w1}, 2)
	trie.IncrementNodeCount([]WordId{w2}, 1)
	trie.IncrementNodeCount([]WordId{w1, w2}, 1)
	trie.IncrementNodeCount([]WordId{w2, w3}, 1)

	type seen struct {
		ngram string
		count uint32
	}
	var got []seen
	it := trie.Iterate()
	for {
		ngram, count, ok := it.Next()
		if !ok {
			break
		}
		key := ""
		for _, id := range ngram {
			key += string(rune('a' + id))
		}
		got = append(got, seen{key, count})
	}
	if len(got) != 4 {
		t.Fatalf("iterator produced %d entries; want 4: %v", len(got), got)
	}
}

func TestSumChildCountsAndN1prx(t *testing.T) {
	trie := NewNGramTrie(2)
	w1, w2, w3 := WordId(numControlWords), WordId(numControlWords+1), WordId(numControlWords+2)
	trie.IncrementNodeCount([]WordId{w1, w2}, 3)
	trie.IncrementNodeCount([]WordId{w1, w3}, 4)

	if got := trie.SumChildCounts([]WordId{w1}); got != 7 {
		t.Errorf("SumChildCounts([w1]) = %d; want 7", got)
	}
	if got := trie.GetN1prx([]WordId{w1}); got != 2 {
		t.Errorf("GetN1prx([w1]) = %d; want 2", got)
	}
}
