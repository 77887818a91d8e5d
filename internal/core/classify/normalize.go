package classify

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// transformers are stateful, so each call borrows its own chain
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, cases.Lower(language.Und))
	},
}

// normalize applies NFKC then lower-casing; invalid UTF-8 is dropped first
func normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normalize(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
