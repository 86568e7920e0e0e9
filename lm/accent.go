package lm

import "unicode"

func isUpper(r rune) bool { return unicode.IsUpper(r) }
func isLower(r rune) bool { return unicode.IsLower(r) }
func toLower(r rune) rune { return unicode.ToLower(r) }

// accentEntry maps an accented rune to its unaccented base letter. The
// table only needs entries for code points > U+007F (spec.md §4.1);
// it is kept sorted by Accented so stripAccent can binary search it.
type accentEntry struct {
	Accented rune
	Base     rune
}

var accentTable = []accentEntry{
	{'À', 'A'}, {'Á', 'A'}, {'Â', 'A'}, {'Ã', 'A'}, {'Ä', 'A'}, {'Å', 'A'},
	{'Æ', 'A'},
	{'Ç', 'C'},
	{'È', 'E'}, {'É', 'E'}, {'Ê', 'E'}, {'Ë', 'E'},
	{'Ì', 'I'}, {'Í', 'I'}, {'Î', 'I'}, {'Ï', 'I'},
	{'Ñ', 'N'},
	{'Ò', 'O'}, {'Ó', 'O'}, {'Ô', 'O'}, {'Õ', 'O'}, {'Ö', 'O'}, {'Ø', 'O'},
	{'Ù', 'U'}, {'Ú', 'U'}, {'Û', 'U'}, {'Ü', 'U'},
	{'Ý', 'Y'},
	{'à', 'a'}, {'á', 'a'}, {'â', 'a'}, {'ã', 'a'}, {'ä', 'a'}, {'å', 'a'},
	{'æ', 'a'},
	{'ç', 'c'},
	{'è', 'e'}, {'é', 'e'}, {'ê', 'e'}, {'ë', 'e'},
	{'ì', 'i'}, {'í', 'i'}, {'î', 'i'}, {'ï', 'i'},
	{'ñ', 'n'},
	{'ò', 'o'}, {'ó', 'o'}, {'ô', 'o'}, {'õ', 'o'}, {'ö', 'o'}, {'ø', 'o'},
	{'ù', 'u'}, {'ú', 'u'}, {'û', 'u'}, {'ü', 'u'},
	{'ý', 'y'}, {'ÿ', 'y'},
}

func init() {
	for i := 1; i < len(accentTable); i++ {
		if accentTable[i-1].Accented >= accentTable[i].Accented {
			panic("accentTable must be sorted by Accented")
		}
	}
}

// stripAccent returns the base letter for r, or r unchanged if r is
// ASCII or not in the table.
func stripAccent(r rune) rune {
	if r <= 0x7F {
		return r
	}
	lo, hi := 0, len(accentTable)
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch {
		case accentTable[mid].Accented < r:
			lo = mid + 1
		case accentTable[mid].Accented > r:
			hi = mid
		default:
			return accentTable[mid].Base
		}
	}
	return r
}

// hasAccent reports whether r differs from its stripped form.
func hasAccent(r rune) bool {
	return stripAccent(r) != r
}
