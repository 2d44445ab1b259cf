package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// IAST marks fold to their base letter so "Pūjā" and "Puja" share a slug.
var transliterate = strings.NewReplacer(
	"ā", "a", "ī", "i", "ū", "u",
	"ṛ", "r", "ṝ", "r", "ḷ", "l",
	"ṅ", "n", "ñ", "n", "ṇ", "n",
	"ṭ", "t", "ḍ", "d",
	"ś", "s", "ṣ", "s",
	"ṃ", "m", "ṁ", "m", "ḥ", "h",
)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = transliterate.Replace(s)
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
