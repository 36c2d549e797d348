package catalog

import (
	"regexp"
	"strings"
)

var alcoholKeywords = []string{
	"rum", "whisky", "whiskey", "beer", "wine", "vodka", "gin", "brandy", "scotch",
	"royal challenge", "royal stag", "black label", "dsp", "old monk", "magic moment",
	"romanov", "tuborg", "kingfisher", "budweiser", "budwiser", "corona", "heineken",
	"bacardi", "smirnoff", "absolut", "teachers", "ballantine", "blenders",
	"imperial blue", "signature", "antiquity", "barrel", "calsberg", "breezer",
	"foster", "carlsberg",
}

var stapleKeywords = []string{"rice", "bread", "water"}

var (
	alcoholPattern = keywordPattern(alcoholKeywords)
	staplePattern  = keywordPattern(stapleKeywords)
)

// keywordPattern matches any keyword as a whole word so that "gin" does not
// fire on "ginger".
func keywordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

func IsAlcohol(name string) bool {
	return alcoholPattern.MatchString(strings.ToLower(name))
}

func IsStaple(name string) bool {
	return staplePattern.MatchString(strings.ToLower(name))
}
