package product

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// spellingFixes rewrites common misspellings and spacing variants of product
// names into their canonical token. Applied in order, after lower-casing.
var spellingFixes = [...]struct{ from, to string }{
	{"desallite", "desalite"},
	{"des alite", "desalite"},
	{"trans track", "transtrack"},
	{"ice box", "icebox"},
}

// Normalize lower-cases text and rewrites known product-name variants.
// No tokenization, stemming or locale tailoring is performed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// cases.Caser keeps state between calls, so it is built per call.
	out := cases.Lower(language.Und).String(text)
	for _, fix := range spellingFixes {
		out = strings.ReplaceAll(out, fix.from, fix.to)
	}
	return out
}
