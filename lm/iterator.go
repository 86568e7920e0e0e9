package lm

// trieFrame is one level of the explicit path+index stack used by
// TrieIterator, avoiding parent pointers per spec.md §9.
type trieFrame struct {
	node *trieNode
	// idx is the next childNodes/childLeaves index to visit at this
	// node; which of the two applies follows from the frame's depth
	// (NGramTrie.isBeforeLeaf).
	idx int
}

// TrieIterator walks an NGramTrie pre-order, depth-first, skipping
// nodes (and leaves) whose count is 0.
type TrieIterator struct {
	trie  *NGramTrie
	stack []trieFrame
	path  []WordId
}

// Iterate returns a fresh iterator positioned before the first
// n-gram.
func (t *NGramTrie) Iterate() *TrieIterator {
	return &TrieIterator{trie: t, stack: []trieFrame{{node: &t.root}}}
}

// Next advances to the next n-gram with count > 0, returning its word
// sequence and count. ok is false once iteration is exhausted; the
// returned slice is reused between calls and must be copied by the
// caller if retained.
func (it *TrieIterator) Next() (ngram []WordId, count uint32, ok bool) {
	for len(it.stack) > 0 {
		depth := len(it.stack) - 1
		frame := &it.stack[depth]

		if it.trie.isBeforeLeaf(depth) {
			if frame.idx >= len(frame.node.childLeaves) {
				it.stack = it.stack[:depth]
				if depth > 0 {
					it.path = it.path[:depth-1]
				}
				continue
			}
			leaf := frame.node.childLeaves[frame.idx]
			frame.idx++
			if leaf.count == 0 {
				continue
			}
			full := append(append([]WordId{}, it.path...), leaf.wordID)
			return full, leaf.count, true
		}

		if frame.idx >= len(frame.node.childNodes) {
			it.stack = it.stack[:depth]
			if depth > 0 {
				it.path = it.path[:depth-1]
			}
			continue
		}
		child := frame.node.childNodes[frame.idx]
		frame.idx++
		it.path = append(it.path[:depth], child.wordID)
		it.stack = append(it.stack, trieFrame{node: child})
		if child.count == 0 {
			continue
		}
		return append([]WordId{}, it.path...), child.count, true
	}
	return nil, 0, false
}
