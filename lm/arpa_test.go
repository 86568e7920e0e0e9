package lm

import (
	"bytes"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestARPARoundTrip(t *testing.T) {
	m := newTestModel(2)
	m.LearnTokens([]string{"the", "cat", "sat"}, true)
	m.LearnTokens([]string{"the", "dog", "sat"}, true)

	var buf bytes.Buffer
	if err := SaveARPA(&buf, m); err != nil {
		t.Fatalf("SaveARPA: %v", err)
	}

	loaded, err := LoadARPA(&buf, "mem", "<unk>", "<s>", "</s>", "<num>")
	if err != nil {
		t.Fatalf("LoadARPA: %v", err)
	}
	if loaded.Order() != m.Order() {
		t.Errorf("loaded order = %d; want %d", loaded.Order(), m.Order())
	}
	for _, w := range []string{"the", "cat", "dog", "sat"} {
		origId := m.Dictionary.WordToId(w)
		loadedId := loaded.Dictionary.WordToId(w)
		if loadedId == NONE {
			t.Fatalf("word %q missing after round trip", w)
		}
		origCount, _ := m.Trie.GetNode([]WordId{origId})
		loadedCount, _ := loaded.Trie.GetNode([]WordId{loadedId})
		if origCount != loadedCount {
			t.Errorf("unigram count of %q = %d after round trip; want %d", w, loadedCount, origCount)
		}
	}
	theOrig, catOrig := m.Dictionary.WordToId("the"), m.Dictionary.WordToId("cat")
	theLoad, catLoad := loaded.Dictionary.WordToId("the"), loaded.Dictionary.WordToId("cat")
	origBigram, _ := m.Trie.GetNode([]WordId{theOrig, catOrig})
	loadedBigram, _ := loaded.Trie.GetNode([]WordId{theLoad, catLoad})
	if origBigram != loadedBigram {
		t.Errorf("bigram (the,cat) count = %d after round trip; want %d", loadedBigram, origBigram)
	}
}

func TestDynamicModelGobRoundTrip(t *testing.T) {
	m := newTestModel(2)
	m.LearnTokens([]string{"the", "cat", "sat"}, true)
	m.LearnTokens([]string{"the", "dog", "sat"}, true)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		t.Fatalf("gob encode: %v", err)
	}

	var loaded DynamicModel
	if err := gob.NewDecoder(&buf).Decode(&loaded); err != nil {
		t.Fatalf("gob decode: %v", err)
	}
	if loaded.Order() != m.Order() {
		t.Errorf("loaded order = %d; want %d", loaded.Order(), m.Order())
	}
	for _, w := range []string{"the", "cat", "dog", "sat"} {
		origId := m.Dictionary.WordToId(w)
		loadedId := loaded.Dictionary.WordToId(w)
		if loadedId == NONE {
			t.Fatalf("word %q missing after gob round trip", w)
		}
		origCount, _ := m.Trie.GetNode([]WordId{origId})
		loadedCount, _ := loaded.Trie.GetNode([]WordId{loadedId})
		if origCount != loadedCount {
			t.Errorf("unigram count of %q = %d after gob round trip; want %d", w, loadedCount, origCount)
		}
	}
}

func TestLoadARPAMissingDataHeader(t *testing.T) {
	_, err := LoadARPA(bytes.NewBufferString("not arpa\n"), "bad", "<unk>", "<s>", "</s>", "<num>")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a *LoadError, got %v", err)
	}
	if le.Kind != ErrUnexpectedEOF {
		t.Errorf("Kind = %v; want ErrUnexpectedEOF", le.Kind)
	}
}

func TestDoLoadNonThrowingFacade(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.arpa")

	m := newTestModel(1)
	m.LearnTokens([]string{"the", "cat"}, true)
	var buf bytes.Buffer
	if err := SaveARPA(&buf, m); err != nil {
		t.Fatalf("SaveARPA: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, le := DoLoad(path, "<unk>", "<s>", "</s>", "<num>")
	if le != nil {
		t.Fatalf("DoLoad: %v", le)
	}
	if loaded.Dictionary.WordToId("cat") == NONE {
		t.Fatalf("DoLoad result missing learned word %q", "cat")
	}

	_, le = DoLoad(filepath.Join(dir, "missing.arpa"), "<unk>", "<s>", "</s>", "<num>")
	if le == nil {
		t.Fatalf("DoLoad on a missing file: expected a *LoadError, got nil")
	}
	if le.Kind != ErrFile {
		t.Errorf("Kind = %v; want ErrFile", le.Kind)
	}
}

func TestLoadThrowingFacadePanicsOnFailure(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Load on a missing file: expected a panic, got none")
		}
		if _, ok := r.(*LoadError); !ok {
			t.Errorf("panic value = %T; want *LoadError", r)
		}
	}()
	Load(filepath.Join(t.TempDir(), "missing.arpa"), "<unk>", "<s>", "</s>", "<num>")
}

func TestLoadARPACountMismatch(t *testing.T) {
	data := "\\data\\\nngram 1=5\n\n\\1-grams:\n1 a\n\\end\\\n"
	_, err := LoadARPA(bytes.NewBufferString(data), "bad", "<unk>", "<s>", "</s>", "<num>")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a *LoadError, got %v", err)
	}
	if le.Kind != ErrCount {
		t.Errorf("Kind = %v; want ErrCount", le.Kind)
	}
}

func TestLoadARPAOrderUnsupported(t *testing.T) {
	data := "\\data\\\nngram 1=1\n\n\\2-grams:\n1 a b\n\\end\\\n"
	_, err := LoadARPA(bytes.NewBufferString(data), "bad", "<unk>", "<s>", "</s>", "<num>")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected a *LoadError, got %v", err)
	}
	if le.Kind != ErrOrderUnsupported {
		t.Errorf("Kind = %v; want ErrOrderUnsupported", le.Kind)
	}
}
