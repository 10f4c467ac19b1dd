package voice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"healthnav-service/internal/domain"
)

// Fixed English->Urdu phrase table for turn-by-turn instructions.
// This is a best-effort, non-exhaustive dictionary, not a general
// translator: matching is by case-insensitive substring, the first
// matching phrase wins, and text with no matching phrase is returned
// unchanged.
var urduPhrases = []struct {
	english string
	urdu    string
}{
	{"Head north", "شمال کی طرف جائیں"},
	{"Head south", "جنوب کی طرف جائیں"},
	{"Head east", "مشرق کی طرف جائیں"},
	{"Head west", "مغرب کی طرف جائیں"},
	{"Turn left", "بائیں مڑیں"},
	{"Turn right", "دائیں مڑیں"},
	{"Continue straight", "سیدھے جائیں"},
	{"Arrive at destination", "منزل پر پہنچ گئے"},
	{"Turn around", "واپس مڑیں"},
}

// Translate converts an instruction into lang. Only Urdu has a phrase
// table; any other language, and any instruction no phrase matches,
// comes back unchanged.
func Translate(text string, lang domain.Language) string {
	if lang != domain.LanguageUrdu {
		return text
	}

	for _, p := range urduPhrases {
		if start, _ := indexFold(text, p.english); start >= 0 {
			return replaceFold(text, p.english, p.urdu)
		}
	}

	return text
}

// replaceFold replaces every case-insensitive occurrence of old with
// repl. Matching walks the original text rune by rune so byte offsets
// stay valid even for characters whose lowercase form has a different
// byte length (street names are arbitrary UTF-8).
func replaceFold(text, old, repl string) string {
	if old == "" {
		return text
	}

	var b strings.Builder
	for text != "" {
		start, length := indexFold(text, old)
		if start < 0 {
			b.WriteString(text)
			break
		}

		b.WriteString(text[:start])
		b.WriteString(repl)
		text = text[start+length:]
	}
	return b.String()
}

// indexFold locates the first case-insensitive occurrence of old in
// text, returning its byte offset and byte length, or -1 when absent.
func indexFold(text, old string) (start, length int) {
	for i := 0; i < len(text); {
		if n := matchFoldLen(text[i:], old); n > 0 {
			return i, n
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, 0
}

// matchFoldLen returns the byte length of the prefix of s matching old
// case-insensitively, or -1 when s does not start with old.
func matchFoldLen(s, old string) int {
	n := 0
	for _, or := range old {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return -1
		}
		if unicode.ToLower(r) != unicode.ToLower(or) {
			return -1
		}
		n += size
	}
	return n
}

// CalculatingRoute builds the route-request announcement for a facility.
func CalculatingRoute(facilityName string, lang domain.Language) string {
	if lang == domain.LanguageUrdu {
		return facilityName + " کی طرف راستہ تیار کر رہے ہیں"
	}
	return "Calculating route to " + facilityName
}

// RouteCleared builds the route-cleared announcement.
func RouteCleared(lang domain.Language) string {
	if lang == domain.LanguageUrdu {
		return "راستہ صاف کر دیا گیا"
	}
	return "Route cleared"
}
