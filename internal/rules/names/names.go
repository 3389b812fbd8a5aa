// Package names normalizes and validates character names against a
// campaign's script rules.
package names

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Script identifies the alphabet a campaign accepts for character names.
type Script string

// Supported scripts.
const (
	ScriptCyrillic Script = "cyrillic"
	ScriptLatin    Script = "latin"
)

// Rules holds the compiled validation patterns for one script. The
// primary name is 2-12 letters; the extra name allows up to 20 characters
// with spaces, hyphens and apostrophes.
type Rules struct {
	Name  *regexp.Regexp
	Extra *regexp.Regexp
}

var (
	cyrillicRules = Rules{
		Name:  regexp.MustCompile(`^(?i)[а-яё]{2,12}$`),
		Extra: regexp.MustCompile(`^(?i)[а-яё \-']{0,20}$`),
	}
	latinRules = Rules{
		Name:  regexp.MustCompile(`^(?i)[a-z]{2,12}$`),
		Extra: regexp.MustCompile(`^(?i)[a-z \-']{0,20}$`),
	}
)

// ForScript returns the validation rules for the given script. The empty
// script defaults to cyrillic.
func ForScript(s Script) (Rules, error) {
	switch s {
	case ScriptCyrillic, "":
		return cyrillicRules, nil
	case ScriptLatin:
		return latinRules, nil
	default:
		return Rules{}, fmt.Errorf("unknown name script %q", s)
	}
}

var titler = cases.Title(language.Und)

// Normalize collapses internal whitespace, trims, and title-cases the
// primary name.
func Normalize(name string) string {
	return titler.String(strings.ToLower(collapse(name)))
}

// NormalizeExtra collapses internal whitespace and trims the extra name
// without changing its case.
func NormalizeExtra(extra string) string {
	return collapse(extra)
}

// Valid reports whether a normalized primary name matches the rules.
func (r Rules) Valid(name string) bool {
	return r.Name.MatchString(name)
}

// ValidExtra reports whether a normalized extra name matches the rules.
// The empty string is always valid: the extra name is optional.
func (r Rules) ValidExtra(extra string) bool {
	return r.Extra.MatchString(extra)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
