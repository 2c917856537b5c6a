// Package language provides the script-detection heuristic used to pick
// response language and UI strings. It distinguishes Kannada from
// English by character share.
package language

import "unicode"

// Tag is a BCP-47-ish language tag, "en" or "kn".
type Tag string

const (
	English Tag = "en"
	Kannada Tag = "kn"
)

// kannadaThreshold is the minimum share of Kannada-script characters
// (ignoring whitespace) for a text to classify as Kannada.
const kannadaThreshold = 0.30

// Detect classifies text as Kannada or English. Empty input defaults to
// English.
func Detect(text string) Tag {
	var kannadaChars, totalChars int

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		totalChars++
		if unicode.Is(unicode.Kannada, r) {
			kannadaChars++
		}
	}

	if totalChars == 0 {
		return English
	}
	if float64(kannadaChars)/float64(totalChars) > kannadaThreshold {
		return Kannada
	}
	return English
}

// IsKannada reports whether text classifies as Kannada script.
func IsKannada(text string) bool {
	return Detect(text) == Kannada
}

// ScriptName returns a human-readable script name for the detected tag.
func ScriptName(text string) string {
	if Detect(text) == Kannada {
		return "Kannada (ಕನ್ನಡ)"
	}
	return "English"
}
