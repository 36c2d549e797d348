package catalog

import (
	"regexp"
	"strings"
)

var (
	parenGroup  = regexp.MustCompile(`\s*\([^)]*\)`)
	mlVolume    = regexp.MustCompile(`\s*\d+\s*ml\b\s*`)
	litreVolume = regexp.MustCompile(`\s*\d+\s*litres?\b\s*`)
	canWord     = regexp.MustCompile(`\s*\bcan\b\s*`)

	parenStripper = strings.NewReplacer("(", "", ")", "")
)

// CleanName lowercases an item name and strips volume/unit noise such as
// "(650 Ml)", "500ml", "2 Litres" and the word "can", collapsing whitespace.
func CleanName(name string) string {
	clean := strings.ToLower(name)
	clean = parenGroup.ReplaceAllString(clean, "")
	clean = mlVolume.ReplaceAllString(clean, " ")
	clean = litreVolume.ReplaceAllString(clean, " ")
	clean = canWord.ReplaceAllString(clean, " ")
	return strings.Join(strings.Fields(clean), " ")
}

// StripParens removes parenthesis characters but keeps their contents.
func StripParens(name string) string {
	return parenStripper.Replace(name)
}

// Tokens splits the cleaned form of name into a set of words.
func Tokens(name string) map[string]struct{} {
	fields := strings.Fields(CleanName(name))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
