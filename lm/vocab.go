// Package lm implements the vocabulary-indexed n-gram language model
// engine: dictionary lookup, the count-storing trie, incremental
// learning, ARPA persistence, smoothing and model composition.
package lm

import "sort"

// WordId identifies a vocabulary entry. NONE is the sentinel value
// used whenever a lookup finds nothing.
type WordId uint32

// NONE is the sentinel WordId, (uint32)-1.
const NONE WordId = ^WordId(0)

// Control-word ids. Every Dictionary reserves these four slots.
const (
	WORD_UNKNOWN WordId = iota
	WORD_BEGIN_OF_SENTENCE
	WORD_END_OF_SENTENCE
	WORD_NUMBER
	numControlWords = iota
)

// PrefixOptions is a bitset controlling prefix_search semantics.
type PrefixOptions uint32

const (
	INCLUDE_CONTROL_WORDS PrefixOptions = 1 << iota
	CASE_INSENSITIVE
	CASE_INSENSITIVE_SMART
	ACCENT_INSENSITIVE
	ACCENT_INSENSITIVE_SMART
	IGNORE_CAPITALIZED
	IGNORE_NON_CAPITALIZED
)

// Dictionary is the ordered sequence of UTF-8 words indexed by
// WordId, together with whatever sorted-view representation is
// currently in effect (see set_words/add_word in spec.md §4.1).
type Dictionary struct {
	words []string
	// sorted holds a permutation sorted[] -> WordId once add_word has
	// been used after a bulk load ("permuted" mode). It is nil in
	// "self-sorted" mode, where words[numControlWords:] is itself
	// sorted.
	sorted []WordId
}

// NewDictionary returns an empty dictionary with the four control
// words installed at ids 0..3.
func NewDictionary(unknown, bos, eos, number string) *Dictionary {
	return &Dictionary{
		words: []string{WORD_UNKNOWN: unknown, WORD_BEGIN_OF_SENTENCE: bos, WORD_END_OF_SENTENCE: eos, WORD_NUMBER: number},
	}
}

// Len returns the number of words in the dictionary, including
// control words.
func (d *Dictionary) Len() int { return len(d.words) }

// IdToWord returns the word for a valid id. Behavior is undefined for
// ids outside [0, Len()).
func (d *Dictionary) IdToWord(id WordId) string { return d.words[id] }

// WordToId performs the lookup described in spec.md §4.1: binary
// search in self-sorted mode (with a linear probe over the control
// words if not found there), or binary search through the
// permutation in permuted mode (with the same control-word probe).
// Returns NONE if absent.
func (d *Dictionary) WordToId(word string) WordId {
	if d.sorted != nil {
		return d.wordToIdPermuted(word)
	}
	return d.wordToIdSelfSorted(word)
}

func (d *Dictionary) wordToIdSelfSorted(word string) WordId {
	lo, hi := numControlWords, len(d.words)
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch {
		case d.words[mid] < word:
			lo = mid + 1
		case d.words[mid] > word:
			hi = mid
		default:
			return WordId(mid)
		}
	}
	for i := 0; i < numControlWords && i < len(d.words); i++ {
		if d.words[i] == word {
			return WordId(i)
		}
	}
	return NONE
}

func (d *Dictionary) wordToIdPermuted(word string) WordId {
	lo, hi := 0, len(d.sorted)
	for lo < hi {
		mid := lo + (hi-lo)/2
		id := d.sorted[mid]
		w := d.words[id]
		switch {
		case w < word:
			lo = mid + 1
		case w > word:
			hi = mid
		default:
			return id
		}
	}
	for i := 0; i < numControlWords && i < len(d.words); i++ {
		if d.words[i] == word {
			return WordId(i)
		}
	}
	return NONE
}

// SetWords bulk-loads the dictionary. Control words may appear
// anywhere among newWords (duplicates against the four reserved
// entries are skipped); the remaining entries are appended and sorted
// byte-lexicographically. Afterwards the dictionary is in
// self-sorted mode (no permutation array). Only control-word entries
// may have pre-existed.
func (d *Dictionary) SetWords(newWords []string) {
	controlSet := map[string]bool{
		d.words[WORD_UNKNOWN]: true, d.words[WORD_BEGIN_OF_SENTENCE]: true,
		d.words[WORD_END_OF_SENTENCE]: true, d.words[WORD_NUMBER]: true,
	}
	rest := make([]string, 0, len(newWords))
	for _, w := range newWords {
		if controlSet[w] {
			continue
		}
		rest = append(rest, w)
	}
	sort.Strings(rest)
	d.words = append(d.words[:numControlWords:numControlWords], rest...)
	d.sorted = nil
}

// AddWord appends a single word, materialising the sorted[]
// permutation (transitioning into "permuted" mode) if one does not
// already exist, then inserting the new id at the correct sorted
// position. Returns the new word's id; if word is already present its
// existing id is returned unchanged and no mutation occurs.
func (d *Dictionary) AddWord(word string) WordId {
	if id := d.WordToId(word); id != NONE {
		return id
	}
	if d.sorted == nil {
		d.sorted = make([]WordId, len(d.words)-numControlWords)
		for i := range d.sorted {
			d.sorted[i] = WordId(numControlWords + i)
		}
	}
	id := WordId(len(d.words))
	d.words = append(d.words, word)

	lo, hi := 0, len(d.sorted)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if d.words[d.sorted[mid]] < word {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	d.sorted = append(d.sorted, NONE)
	copy(d.sorted[lo+1:], d.sorted[lo:])
	d.sorted[lo] = id
	return id
}

// PrefixSearch enumerates vocabulary entries matching prefix under
// options, optionally restricted to the ids in widsIn (nil means
// "scan the whole dictionary"). Matches are appended to widsOut, which
// is also returned.
func (d *Dictionary) PrefixSearch(prefix string, widsIn []WordId, widsOut []WordId, options PrefixOptions) []WordId {
	prefixRunes := []rune(prefix)

	check := func(id WordId) bool {
		if id < numControlWords && options&INCLUDE_CONTROL_WORDS == 0 {
			return false
		}
		return matchesPrefix(prefixRunes, d.words[id], options)
	}

	if widsIn != nil {
		for _, id := range widsIn {
			if check(id) {
				widsOut = append(widsOut, id)
			}
		}
		return widsOut
	}
	for i := 0; i < len(d.words); i++ {
		if check(WordId(i)) {
			widsOut = append(widsOut, WordId(i))
		}
	}
	return widsOut
}

func matchesPrefix(prefix []rune, candidate string, options PrefixOptions) bool {
	if len(candidate) == 0 && len(prefix) > 0 {
		return false
	}
	candRunes := []rune(candidate)
	if len(candRunes) < len(prefix) {
		return false
	}
	if options&IGNORE_CAPITALIZED != 0 && len(candRunes) > 0 && isUpper(candRunes[0]) {
		return false
	}
	if options&IGNORE_NON_CAPITALIZED != 0 && len(candRunes) > 0 && !isUpper(candRunes[0]) {
		return false
	}
	caseInsensitive := options&CASE_INSENSITIVE != 0
	caseSmart := options&CASE_INSENSITIVE_SMART != 0
	accentInsensitive := options&ACCENT_INSENSITIVE != 0
	accentSmart := options&ACCENT_INSENSITIVE_SMART != 0

	for i, pr := range prefix {
		cr := candRunes[i]
		if caseInsensitive {
			pr, cr = toLower(pr), toLower(cr)
		} else if caseSmart && isLower(pr) {
			cr = toLower(cr)
		}
		if accentInsensitive {
			pr, cr = stripAccent(pr), stripAccent(cr)
		} else if accentSmart && !hasAccent(pr) {
			cr = stripAccent(cr)
		}
		if pr != cr {
			return false
		}
	}
	return true
}
