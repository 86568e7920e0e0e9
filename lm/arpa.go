package lm

// ARPA-like corpus/model file parsing and serialization, per spec.md
// §4.3 and §6. Unlike a conventional ARPA back-off file, each n-gram
// row here carries a raw count (plus an optional, load-only
// timestamp) rather than a log-probability.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/glog"
)

// GobEncode round-trips a DynamicModel through its ARPA-like
// representation rather than gob's default struct encoding, which
// would silently drop the Dictionary's and NGramTrie's unexported
// fields. This is what lets cmd/lmc's -format=gob option and any
// embedder that caches a compiled model via encoding/gob actually
// preserve the model's content. A leading "control" line records the
// four control-word tokens, since LoadARPA needs them as parameters
// rather than recovering them from the body.
func (m *DynamicModel) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "control %s %s %s %s\n",
		m.Dictionary.IdToWord(WORD_UNKNOWN), m.Dictionary.IdToWord(WORD_BEGIN_OF_SENTENCE),
		m.Dictionary.IdToWord(WORD_END_OF_SENTENCE), m.Dictionary.IdToWord(WORD_NUMBER))
	if err := SaveARPA(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode is GobEncode's counterpart.
func (m *DynamicModel) GobDecode(data []byte) error {
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return fmt.Errorf("lm: malformed gob-encoded model")
	}
	header := bytes.Fields(data[:nl])
	if len(header) != 5 || string(header[0]) != "control" {
		return fmt.Errorf("lm: malformed gob-encoded model: missing control-word header")
	}
	decoded, err := LoadARPA(bytes.NewReader(data[nl+1:]), "<gob>",
		string(header[1]), string(header[2]), string(header[3]), string(header[4]))
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

// arpaReader skips blank lines and supports pushing one line back, so
// the state machine below can peek at a line before deciding which
// state it belongs to (spec.md §4.3's NGRAMS_HEAD/NGRAMS transition).
type arpaReader struct {
	sc      *bufio.Scanner
	pending []byte
	have    bool
}

func newArpaReader(r io.Reader) *arpaReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &arpaReader{sc: sc}
}

func (a *arpaReader) next() ([]byte, bool) {
	if a.have {
		a.have = false
		return a.pending, true
	}
	for a.sc.Scan() {
		line := bytes.TrimSpace(a.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		return line, true
	}
	return nil, false
}

func (a *arpaReader) pushBack(line []byte) {
	a.pending = line
	a.have = true
}

// LoadARPA parses an ARPA-like corpus/model file from r into a fresh
// DynamicModel, following the state machine of spec.md §4.3:
// BEGIN -> COUNTS -> (NGRAMS_HEAD -> NGRAMS)* -> DONE. filename is
// only used to label any returned *LoadError.
func LoadARPA(r io.Reader, filename, unknown, bos, eos, number string) (*DynamicModel, error) {
	in := newArpaReader(r)

	line, ok := in.next()
	if !ok || string(line) != `\data\` {
		return nil, newLoadError(ErrUnexpectedEOF, filename, fmt.Errorf(`expected "\data\"`))
	}

	var counts []int
	order := 0
	for {
		line, ok = in.next()
		if !ok {
			return nil, newLoadError(ErrUnexpectedEOF, filename, fmt.Errorf("expected ngram counts or a section header"))
		}
		if !bytes.HasPrefix(line, []byte("ngram")) {
			in.pushBack(line)
			break
		}
		l, c, err := parseCountLine(line)
		if err != nil {
			return nil, newLoadError(ErrCount, filename, err)
		}
		for len(counts) < l {
			counts = append(counts, 0)
		}
		counts[l-1] = c
		if l > order {
			order = l
		}
	}
	if order == 0 {
		return nil, newLoadError(ErrOrderUnsupported, filename, fmt.Errorf("no ngram counts declared"))
	}

	model := NewDynamicModel(order, unknown, bos, eos, number)

	for {
		line, ok = in.next()
		if !ok {
			return nil, newLoadError(ErrUnexpectedEOF, filename, fmt.Errorf("expected n-gram section or \\end\\"))
		}
		if string(line) == `\end\` {
			break
		}
		k, err := parseSectionHeader(line)
		if err != nil {
			return nil, newLoadError(ErrOrderUnexpected, filename, err)
		}
		if k < 1 || k > order {
			return nil, newLoadError(ErrOrderUnsupported, filename, fmt.Errorf("%d-grams section but order is %d", k, order))
		}
		seen, err := readNgramSection(in, model, k)
		if err != nil {
			return nil, newLoadError(ErrNumTokens, filename, err)
		}
		if k-1 < len(counts) && counts[k-1] != 0 && seen != counts[k-1] {
			return nil, newLoadError(ErrCount, filename, fmt.Errorf("%d-grams: declared %d, found %d", k, counts[k-1], seen))
		}
		if glog.V(1) {
			glog.Infof("lm: loaded %d %d-gram(s)", seen, k)
		}
	}

	model.AssureValidControlWords()
	model.dirty = false
	return model, nil
}

// LoadARPAFile opens path and loads it as an ARPA-like model.
func LoadARPAFile(path, unknown, bos, eos, number string) (*DynamicModel, error) {
	f, err := openMaybeGzip(path)
	if err != nil {
		return nil, newLoadError(ErrFile, path, err)
	}
	defer f.Close()
	return LoadARPA(f, path, unknown, bos, eos, number)
}

// DoLoad is the non-throwing facade spec.md §7 calls for, mirroring
// the original library's do_load() (liblm/lm.h): it reports failure
// through a returned *LoadError rather than a panic, so recovery UI
// can switch on Kind.
func DoLoad(path, unknown, bos, eos, number string) (*DynamicModel, *LoadError) {
	model, err := LoadARPAFile(path, unknown, bos, eos, number)
	if err == nil {
		return model, nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return nil, le
	}
	return nil, newLoadError(ErrFile, path, err)
}

// Load is the throwing facade counterpart to DoLoad, mirroring the
// original library's load() (liblm/lm.h), which calls do_load() and
// raises an exception on failure. Go has no exceptions, so Load
// panics with the *LoadError instead; callers that want the
// recoverable form should call DoLoad directly.
func Load(path, unknown, bos, eos, number string) *DynamicModel {
	model, err := DoLoad(path, unknown, bos, eos, number)
	if err != nil {
		panic(err)
	}
	return model
}

func parseCountLine(line []byte) (level, count int, err error) {
	fields := bytes.Fields(line)
	if len(fields) != 2 || !bytes.HasPrefix(fields[0], []byte("ngram")) {
		return 0, 0, fmt.Errorf("malformed ngram count line %q", line)
	}
	// fields[1] is "L=C" possibly without spaces; fields[0] is
	// literally "ngram".
	eq := bytes.IndexByte(fields[1], '=')
	if eq < 0 {
		return 0, 0, fmt.Errorf("malformed ngram count line %q", line)
	}
	l, err1 := strconv.Atoi(string(fields[1][:eq]))
	c, err2 := strconv.Atoi(string(fields[1][eq+1:]))
	if err1 != nil || err2 != nil || l <= 0 {
		return 0, 0, fmt.Errorf("malformed ngram count line %q", line)
	}
	return l, c, nil
}

func parseSectionHeader(line []byte) (int, error) {
	if len(line) == 0 || line[0] != '\\' || !bytes.HasSuffix(line, []byte("-grams:")) {
		return 0, fmt.Errorf(`expected section header "\N-grams:", got %q`, line)
	}
	n, err := strconv.Atoi(string(line[1 : len(line)-len("-grams:")]))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("malformed section header %q", line)
	}
	return n, nil
}

// readNgramSection consumes entries of a k-gram section until the
// next section header or \end\ (which it pushes back), applying each
// to model. Zero-count rows are silently ignored (legacy files) but
// still counted towards "seen" so declared-count mismatches surface
// correctly only for genuinely missing/extra rows.
func readNgramSection(in *arpaReader, model *DynamicModel, k int) (seen int, err error) {
	for {
		line, ok := in.next()
		if !ok {
			return seen, fmt.Errorf("unexpected EOF inside %d-grams section", k)
		}
		if len(line) > 0 && line[0] == '\\' {
			in.pushBack(line)
			return seen, nil
		}
		count, words, err := parseNgramRow(line, k)
		if err != nil {
			return seen, err
		}
		seen++
		if count == 0 {
			continue
		}
		ids := make([]WordId, k)
		for i, w := range words {
			ids[i] = model.resolveWord(w, true)
		}
		model.Trie.IncrementNodeCount(ids, int32(count))
	}
}

// parseNgramRow parses "<count> [<time>] <w1> ... <wk>".
func parseNgramRow(line []byte, k int) (count uint32, words []string, err error) {
	fields := bytes.Fields(line)
	switch len(fields) {
	case k + 1:
		// no time field
	case k + 2:
		fields = append(fields[:1], fields[2:]...)
	default:
		return 0, nil, fmt.Errorf("expected %d or %d tokens, got %d in %q", k+1, k+2, len(fields), line)
	}
	c, err := strconv.ParseUint(string(fields[0]), 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("bad count %q: %w", fields[0], err)
	}
	words = make([]string, k)
	for i := 0; i < k; i++ {
		words[i] = string(fields[i+1])
	}
	return uint32(c), words, nil
}

// SaveARPA serializes model to w in the ARPA-like format of spec.md
// §6. Per-word load-time timestamps are not retained by the trie (see
// spec.md §3's Unigram note) and are therefore never re-emitted.
func SaveARPA(w io.Writer, model *DynamicModel) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "\\data\\\n")
	for l := 1; l <= model.order; l++ {
		fmt.Fprintf(bw, "ngram %d=%d\n", l, model.Trie.GetNumNgrams(l-1))
	}
	for l := 1; l <= model.order; l++ {
		fmt.Fprintf(bw, "\n\\%d-grams:\n", l)
		it := model.Trie.Iterate()
		for {
			ngram, count, ok := it.Next()
			if !ok {
				break
			}
			if len(ngram) != l {
				continue
			}
			fmt.Fprintf(bw, "%d", count)
			for _, id := range ngram {
				fmt.Fprintf(bw, " %s", model.Dictionary.IdToWord(id))
			}
			fmt.Fprint(bw, "\n")
		}
	}
	fmt.Fprint(bw, "\\end\\\n")
	return bw.Flush()
}

// SaveARPAFile writes model to path in the ARPA-like format.
func SaveARPAFile(path string, model *DynamicModel) error {
	return writeFile(path, func(w io.Writer) error {
		return SaveARPA(w, model)
	})
}
