package lm

// NGramTrie is the count-storing trie described in spec.md §3/§4.2: a
// root node plus cached per-level statistics. Depth d below the root
// holds n-grams of length d; whether a node at depth d is stored as a
// full interior trieNode, a before-leaf trieNode (inline leaf vector)
// or a bare leafEntry owned by its parent depends only on d and the
// trie's order (see node.go): d == order is never materialised as a
// trieNode at all.
type NGramTrie struct {
	order int
	root  trieNode

	// numNgrams[l] is the number of nodes with count>0 at level l
	// (n-grams of length l+1); totalNgrams[l] is the sum of their
	// counts. Both are maintained incrementally by adjustCount.
	numNgrams   []int
	totalNgrams []uint64
}

// NewNGramTrie creates an empty trie for n-grams up to the given
// order (order >= 1).
func NewNGramTrie(order int) *NGramTrie {
	return &NGramTrie{
		order:       order,
		numNgrams:   make([]int, order),
		totalNgrams: make([]uint64, order),
	}
}

func (t *NGramTrie) Order() int { return t.order }

func (t *NGramTrie) GetNumNgrams(level int) int      { return t.numNgrams[level] }
func (t *NGramTrie) GetTotalNgrams(level int) uint64 { return t.totalNgrams[level] }

// isBeforeLeaf reports whether a node at the given depth (0 == root)
// stores its children as leafEntry rather than *trieNode.
func (t *NGramTrie) isBeforeLeaf(depth int) bool { return depth == t.order-1 }

// descend walks wids from the root, creating interior/before-leaf
// trieNodes as needed (when create is true) or stopping at the first
// miss (when false). It returns the node at depth len(wids)-1 (the
// parent of the last word) so the caller can manipulate the last
// word's entry directly, plus whether that parent existed/was
// created successfully. wids must have length in [1, order].
func (t *NGramTrie) descend(wids []WordId, create bool) (*trieNode, bool) {
	node := &t.root
	// Walk all but the last word; each step moves from a node at depth
	// i to its child at depth i+1, which must be an interior node
	// (depth i+1 < order) since we still have further words to place
	// beneath it except for the very last step.
	for i := 0; i < len(wids)-1; i++ {
		child, ok := t.child(node, i, wids[i], create)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// child returns the child trieNode of node (which sits at the given
// depth) for word, creating it if create is true and it is absent.
// depth is node's own depth; the returned child is at depth+1, which
// must be < order-1... actually may equal order-1 (before-leaf) but
// never order (that case is handled by leaf accessors, not child).
func (t *NGramTrie) child(node *trieNode, depth int, word WordId, create bool) (*trieNode, bool) {
	idx, found := findChildNode(node.childNodes, word)
	if found {
		return node.childNodes[idx], true
	}
	if !create {
		return nil, false
	}
	newNode := &trieNode{wordID: word}
	node.childNodes = append(node.childNodes, nil)
	copy(node.childNodes[idx+1:], node.childNodes[idx:])
	node.childNodes[idx] = newNode
	return newNode, true
}

// AddNode ensures the path for wids exists (creating interior and
// before-leaf nodes as required) and returns the deepest trieNode
// reached, i.e. the node for wids[:len(wids)-1] when len(wids) ==
// order, or the node for the full wids otherwise. It panics if
// len(wids) == 0 or len(wids) > order.
func (t *NGramTrie) AddNode(wids []WordId) *trieNode {
	if len(wids) == 0 || len(wids) > t.order {
		panic("lm: AddNode: n-gram length out of range")
	}
	if len(wids) == t.order {
		parent, _ := t.descend(wids, true)
		return parent
	}
	// Need one more hop than descend(..., true) gives us: descend stops
	// at len(wids)-1 hops, landing on the parent of the last word; we
	// additionally materialise that last word's own node.
	parent, _ := t.descend(wids, true)
	last := wids[len(wids)-1]
	child, _ := t.child(parent, len(wids)-1, last, true)
	return child
}

// GetNode descends wids, returning (count, true) if found, or (0,
// false) on any missing level.
func (t *NGramTrie) GetNode(wids []WordId) (uint32, bool) {
	if len(wids) == 0 {
		return 0, false
	}
	parent, ok := t.descend(wids, false)
	if !ok {
		return 0, false
	}
	last := wids[len(wids)-1]
	if len(wids) == t.order {
		idx, found := findChildLeaf(parent.childLeaves, last)
		if !found {
			return 0, false
		}
		return parent.childLeaves[idx].count, true
	}
	idx, found := findChildNode(parent.childNodes, last)
	if !found {
		return 0, false
	}
	return parent.childNodes[idx].count, true
}

// IncrementNodeCount updates the count of the n-gram wids (length n,
// 1 <= n <= order) by inc, creating the path if necessary, and
// maintains numNgrams/totalNgrams for level n-1. Control-word
// unigrams (wids[0] < numControlWords when n==1) never drop below a
// count of 1. Returns the new count.
func (t *NGramTrie) IncrementNodeCount(wids []WordId, inc int32) uint32 {
	n := len(wids)
	level := n - 1
	clampFloor := uint32(0)
	if n == 1 && wids[0] < numControlWords {
		clampFloor = 1
	}

	if n == t.order {
		parent, _ := t.descend(wids, true)
		last := wids[n-1]
		idx, found := findChildLeaf(parent.childLeaves, last)
		var old uint32
		if found {
			old = parent.childLeaves[idx].count
		} else {
			parent.childLeaves = growLeaves(parent.childLeaves)
			copy(parent.childLeaves[idx+1:], parent.childLeaves[idx:len(parent.childLeaves)-1])
			parent.childLeaves[idx] = leafEntry{wordID: last}
		}
		newCount := applyIncrement(old, inc, clampFloor)
		t.adjustLevel(level, old, newCount)
		parent.childLeaves[idx].count = newCount
		return newCount
	}

	parent, _ := t.descend(wids, true)
	last := wids[n-1]
	node, _ := t.child(parent, n-1, last, true)
	old := node.count
	newCount := applyIncrement(old, inc, clampFloor)
	t.adjustLevel(level, old, newCount)
	node.count = newCount
	return newCount
}

func applyIncrement(old uint32, inc int32, clampFloor uint32) uint32 {
	v := int64(old) + int64(inc)
	if v < int64(clampFloor) {
		v = int64(clampFloor)
	}
	if v < 0 {
		v = 0
	}
	return uint32(v)
}

// adjustLevel updates totalNgrams/numNgrams[level] for a count change
// from old to new.
func (t *NGramTrie) adjustLevel(level int, old, new uint32) {
	t.totalNgrams[level] += uint64(new) - uint64(old)
	if old == 0 && new > 0 {
		t.numNgrams[level]++
	} else if old > 0 && new == 0 {
		t.numNgrams[level]--
	}
}

// GetChildWordIds enumerates, into out, the ids of history's direct
// children with count > 0 (history has length 0..order-1; an empty
// history enumerates unigrams).
func (t *NGramTrie) GetChildWordIds(history []WordId, out []WordId) []WordId {
	node := t.nodeAt(history)
	if node == nil {
		return out
	}
	depth := len(history)
	if t.isBeforeLeaf(depth) {
		for _, l := range node.childLeaves {
			if l.count > 0 {
				out = append(out, l.wordID)
			}
		}
		return out
	}
	for _, c := range node.childNodes {
		if c.count > 0 {
			out = append(out, c.wordID)
		}
	}
	return out
}

// nodeAt returns the trieNode for history (possibly the root when
// history is empty), or nil if any hop is missing.
func (t *NGramTrie) nodeAt(history []WordId) *trieNode {
	node := &t.root
	for i, w := range history {
		child, ok := t.child(node, i, w, false)
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// GetN1prx returns N1+(history •): the number of distinct words that
// extend history with a positive count. At the unigram level (history
// empty) control-word children with no further continuations are
// subtracted, keeping probability sums close to 1.0 on small models
// (spec.md §4.2).
func (t *NGramTrie) GetN1prx(history []WordId) int {
	node := t.nodeAt(history)
	if node == nil {
		return 0
	}
	depth := len(history)
	n := 0
	if t.isBeforeLeaf(depth) {
		for _, l := range node.childLeaves {
			if l.count > 0 {
				n++
			}
		}
	} else {
		for _, c := range node.childNodes {
			if c.count > 0 {
				n++
			}
		}
	}
	if depth == 0 {
		for id := WordId(0); id < numControlWords; id++ {
			if t.isEmptyControlChild(id) {
				n--
			}
		}
	}
	return n
}

// isEmptyControlChild reports whether the unigram for a control word
// has a positive count but zero onward continuations.
func (t *NGramTrie) isEmptyControlChild(id WordId) bool {
	if t.order == 1 {
		return false
	}
	depth := 1
	if t.isBeforeLeaf(0) {
		idx, found := findChildLeaf(t.root.childLeaves, id)
		return found && t.root.childLeaves[idx].count > 0
	}
	idx, found := findChildNode(t.root.childNodes, id)
	if !found || t.root.childNodes[idx].count == 0 {
		return false
	}
	child := t.root.childNodes[idx]
	_ = depth
	if t.isBeforeLeaf(1) {
		return len(child.childLeaves) == 0
	}
	return len(child.childNodes) == 0
}

// SumChildCounts returns Sigma over history's children of their
// counts.
func (t *NGramTrie) SumChildCounts(history []WordId) uint32 {
	node := t.nodeAt(history)
	if node == nil {
		return 0
	}
	var sum uint64
	if t.isBeforeLeaf(len(history)) {
		for _, l := range node.childLeaves {
			sum += uint64(l.count)
		}
	} else {
		for _, c := range node.childNodes {
			sum += uint64(c.count)
		}
	}
	return uint32(sum)
}
