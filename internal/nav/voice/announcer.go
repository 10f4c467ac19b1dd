package voice

import (
	"sync"
	"time"

	"healthnav-service/internal/domain"
	"healthnav-service/internal/ports"
)

// Announcer delivers narration to a Speaker, optionally after a delay.
//
// Delays are used by the session to keep status announcements from racing
// each other; they do not queue. When a delayed announcement fires it
// cancels whatever the Speaker is currently saying (last request wins).
// Close stops every pending delay so narration never outlives the session.
type Announcer struct {
	speaker ports.Speaker

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
	closed  bool
}

func NewAnnouncer(speaker ports.Speaker) *Announcer {
	return &Announcer{
		speaker: speaker,
		pending: make(map[*time.Timer]struct{}),
	}
}

// Announce speaks text in lang after delay. A zero delay speaks
// immediately. Announcements on a closed announcer are dropped.
func (a *Announcer) Announce(text string, lang domain.Language, delay time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	if delay <= 0 {
		a.speakLocked(text, lang)
		return
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		_, live := a.pending[t]
		delete(a.pending, t)
		if !live || a.closed {
			return
		}
		a.speakLocked(text, lang)
	})
	a.pending[t] = struct{}{}
}

// speakLocked delivers to the speaker while holding mu, so that Close
// cannot complete while an utterance is being issued. Speaker
// implementations must not block.
func (a *Announcer) speakLocked(text string, lang domain.Language) {
	a.speaker.Cancel()
	a.speaker.Speak(text, lang)
}

// Close drops all pending announcements and silences the speaker. Once
// Close returns the speaker receives no further calls: a timer firing
// concurrently either finished speaking before Close took the lock, or
// sees closed and gives up.
func (a *Announcer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	a.closed = true
	for t := range a.pending {
		t.Stop()
		delete(a.pending, t)
	}
	a.speaker.Cancel()
}
