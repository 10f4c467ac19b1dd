package domain

// Language is a voice-narration language tag.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUrdu    Language = "ur"
)

// Supported reports whether the language is one of the two narration
// languages the application ships with.
func (l Language) Supported() bool {
	return l == LanguageEnglish || l == LanguageUrdu
}
