package table

import (
	"strings"

	"github.com/kunalshah912/resc/internal/config"
)

// Pseudo-locale configurations. en-XA carries accented expansions, ar-XB
// carries forced-RTL text.
var (
	pseudoAccented = config.Config{Language: "en", Region: "XA"}
	pseudoRTL      = config.Config{Language: "ar", Region: "XB"}
)

// Pseudolocalize synthesizes en-XA and ar-XB values for every translatable
// string and plural defined in the default configuration. The generated
// values are weak: explicit definitions for those locales always win.
func Pseudolocalize(t *Table) {
	for _, pkg := range t.Packages {
		for _, tg := range pkg.Types {
			for _, e := range tg.Entries {
				pseudolocalizeEntry(e)
			}
		}
	}
}

func pseudolocalizeEntry(e *Entry) {
	base := e.FindValue(config.Default())
	if base == nil || !base.Translatable {
		return
	}
	if base.Kind != KindString && base.Kind != KindPlural {
		return
	}

	// AddValue ignores weak insertions when a value already exists, so
	// explicitly declared pseudo-locale values are preserved.
	_ = e.AddValue(derive(base, pseudoAccented, accent))
	_ = e.AddValue(derive(base, pseudoRTL, forceRTL))
}

func derive(base *Value, cfg config.Config, transform func(string) string) *Value {
	v := &Value{
		Config:       cfg,
		Kind:         base.Kind,
		Data:         transform(base.Data),
		Raw:          base.Raw,
		Weak:         true,
		Translatable: base.Translatable,
	}
	for _, item := range base.Items {
		v.Items = append(v.Items, PluralItem{
			Quantity: item.Quantity,
			Value:    transform(item.Value),
		})
	}
	return v
}

var accentMap = map[rune]rune{
	'a': 'å', 'b': 'ƀ', 'c': 'ç', 'd': 'ð', 'e': 'é', 'f': 'ƒ', 'g': 'ĝ',
	'h': 'ĥ', 'i': 'î', 'j': 'ĵ', 'k': 'ķ', 'l': 'ļ', 'm': 'm', 'n': 'ñ',
	'o': 'ö', 'p': 'þ', 'q': 'q', 'r': 'ŕ', 's': 'š', 't': 'ţ', 'u': 'û',
	'v': 'ṽ', 'w': 'ŵ', 'x': 'x', 'y': 'ý', 'z': 'ž',
	'A': 'Å', 'B': 'Ɓ', 'C': 'Ç', 'D': 'Ð', 'E': 'É', 'F': 'Ƒ', 'G': 'Ĝ',
	'H': 'Ĥ', 'I': 'Î', 'J': 'Ĵ', 'K': 'Ķ', 'L': 'Ļ', 'M': 'M', 'N': 'Ñ',
	'O': 'Ö', 'P': 'Þ', 'Q': 'Q', 'R': 'Ŕ', 'S': 'Š', 'T': 'Ţ', 'U': 'Û',
	'V': 'Ṽ', 'W': 'Ŵ', 'X': 'X', 'Y': 'Ý', 'Z': 'Ž',
}

// accent maps letters to accented forms and brackets the result so
// truncation is visible, skipping format substitutions.
func accent(s string) string {
	var b strings.Builder
	b.WriteByte('[')
	skip := false
	for i, r := range s {
		if skip {
			// Inside a %-substitution: copy verbatim until the verb.
			b.WriteRune(r)
			if !isFormatPrefix(r) {
				skip = false
			}
			continue
		}
		if r == '%' && i+1 < len(s) {
			b.WriteRune(r)
			skip = true
			continue
		}
		if m, ok := accentMap[r]; ok {
			b.WriteRune(m)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func isFormatPrefix(r rune) bool {
	return (r >= '0' && r <= '9') || r == '$' || r == '.' || r == '-' || r == '+' || r == ' ' || r == '#'
}

// RTL control characters: RLM + RLO ... PDF + RLM.
const (
	rlm = "‏"
	rlo = "‮"
	pdf = "‬"
)

// forceRTL wraps the string in right-to-left override marks.
func forceRTL(s string) string {
	if s == "" {
		return s
	}
	return rlm + rlo + s + pdf + rlm
}
