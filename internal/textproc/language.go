package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// LanguageUnknown is returned when no language can be determined.
const LanguageUnknown = "unknown"

// shortTextThreshold is the length in runes below which statistical detection
// is unreliable and common-word voting is used instead.
const shortTextThreshold = 20

// vietnameseMarkers are high-frequency Vietnamese function and domain words
// used to vote on very short texts.
var vietnameseMarkers = map[string]bool{
	"và":    true,
	"của":   true,
	"là":    true,
	"có":    true,
	"được":  true,
	"cho":   true,
	"với":   true,
	"này":   true,
	"trong": true,
	"không": true,
	"tôm":   true,
	"nuôi":  true,
}

// DetectLanguage returns the ISO 639-1 language code of the text, or
// LanguageUnknown. Texts shorter than shortTextThreshold runes are classified
// by Vietnamese common-word voting with an ASCII fallback to English.
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return LanguageUnknown
	}

	if utf8.RuneCountInString(text) < shortTextThreshold {
		return detectShort(text)
	}

	info := whatlanggo.Detect(text)
	if code := info.Lang.Iso6391(); code != "" {
		return code
	}

	return LanguageUnknown
}

// detectShort classifies a short text by voting on Vietnamese marker words.
// A text with no marker hits but only ASCII letters is assumed English.
func detectShort(text string) string {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if vietnameseMarkers[strings.Trim(word, ".,;:!?\"'()")] {
			return "vi"
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) && r > unicode.MaxASCII {
			return LanguageUnknown
		}
	}

	return "en"
}
