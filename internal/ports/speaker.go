package ports

import "healthnav-service/internal/domain"

// Contract for turning instruction text into spoken audio.
//
// Implementations keep at most one utterance audible at a time: Speak
// cancels any in-flight utterance before starting the new one (last
// request wins). There is no queueing.
type Speaker interface {
	Speak(text string, lang domain.Language)
	// Cancel stops the in-flight utterance, if any.
	Cancel()
}
