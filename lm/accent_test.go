package lm

import "testing"

func TestStripAccent(t *testing.T) {
	for _, c := range []struct {
		In   rune
		Want rune
	}{
		{'é', 'e'}, {'É', 'E'}, {'ñ', 'n'}, {'ç', 'c'}, {'ü', 'u'},
		{'a', 'a'}, {'Z', 'Z'}, {'5', '5'},
	} {
		if got := stripAccent(c.In); got != c.Want {
			t.Errorf("stripAccent(%q) = %q; want %q", c.In, got, c.Want)
		}
	}
}

func TestHasAccent(t *testing.T) {
	for _, c := range []struct {
		In   rune
		Want bool
	}{
		{'é', true}, {'e', false}, {'ñ', true}, {'n', false}, {'9', false},
	} {
		if got := hasAccent(c.In); got != c.Want {
			t.Errorf("hasAccent(%q) = %v; want %v", c.In, got, c.Want)
		}
	}
}

func TestAccentTableIsSortedAndComplete(t *testing.T) {
	for i := 1; i < len(accentTable); i++ {
		if accentTable[i-1].Accented >= accentTable[i].Accented {
			t.Fatalf("accentTable out of order at %d: %q >= %q", i, accentTable[i-1].Accented, accentTable[i].Accented)
		}
	}
	for _, r := range []rune("ÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏÑÒÓÔÕÖØÙÚÛÜÝàáâãäåæçèéêëìíîïñòóôõöøùúûüýÿ") {
		if !hasAccent(r) {
			t.Errorf("hasAccent(%q) = false; want true", r)
		}
	}
}
