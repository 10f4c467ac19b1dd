package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"healthnav-service/internal/adapters/geoloc"
	"healthnav-service/internal/domain"
	"healthnav-service/internal/nav"
	"healthnav-service/internal/ports"
)

// NavSocketHandler runs one navigation session per websocket connection.
//
// Client commands (set_location, select_basemap, set_voice_language,
// toggle_voice, select_facility, clear_route, location_error) are fed to
// the session; session events and narration flow back as JSON messages.
// Closing the connection closes the session, which cancels the location
// subscription and any pending narration.
type NavSocketHandler struct {
	Provider ports.RouteProvider
	Catalog  ports.FacilityCatalog
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The map UI is served from a separate origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type navCommand struct {
	Action     string  `json:"action"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Key        string  `json:"key"`
	Language   string  `json:"language"`
	FacilityID int     `json:"facility_id"`
	Message    string  `json:"message"`
}

type speakMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Lang string `json:"lang,omitempty"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// socketSpeaker forwards narration to the connected client, which owns
// the actual speech synthesis.
type socketSpeaker struct {
	out chan<- any
}

func (s *socketSpeaker) Speak(text string, lang domain.Language) {
	s.send(speakMessage{Type: "speak", Text: text, Lang: string(lang)})
}

func (s *socketSpeaker) Cancel() {
	s.send(speakMessage{Type: "speak_cancel"})
}

// send never runs after the session closes: Serve closes the session
// (which joins the event loop and the announcer) before it closes out.
func (s *socketSpeaker) send(msg any) {
	select {
	case s.out <- msg:
	default:
	}
}

func (h *NavSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("nav socket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	out := make(chan any, 64)

	sess := nav.NewSession(nav.Config{
		Provider: h.Provider,
		Speaker:  &socketSpeaker{out: out},
		Notify: func(e nav.Event) {
			select {
			case out <- e:
			default:
				log.Printf("nav socket: dropping event type=%s (slow client)", e.Type)
			}
		},
	})
	defer sess.Close()

	source := geoloc.NewPushSource()
	sess.Track(source)

	// gorilla/websocket allows one concurrent writer; everything funnels
	// through the out channel.
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range out {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	log.Printf("nav session started session=%s remote=%s", sess.ID(), r.RemoteAddr)

	for {
		var cmd navCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("nav session read failed session=%s err=%v", sess.ID(), err)
			}
			break
		}

		h.dispatch(r.Context(), sess, source, cmd, out)
	}

	// Close joins the session's event loop, so nothing can send on out
	// once it is closed.
	sess.Close()
	close(out)
	<-writerDone
	log.Printf("nav session ended session=%s", sess.ID())
}

func (h *NavSocketHandler) dispatch(
	ctx context.Context,
	sess *nav.Session,
	source *geoloc.PushSource,
	cmd navCommand,
	out chan<- any,
) {
	fail := func(msg string) {
		select {
		case out <- errorMessage{Type: "error", Message: msg}:
		default:
		}
	}

	switch cmd.Action {
	case "set_location":
		source.Push(domain.Coordinate{Lat: cmd.Lat, Lon: cmd.Lon})

	case "location_error":
		source.Fail(errors.New(cmd.Message))

	case "select_basemap":
		if err := sess.SelectBasemap(cmd.Key); err != nil {
			fail(err.Error())
		}

	case "set_voice_language":
		if err := sess.SetVoiceLanguage(domain.Language(cmd.Language)); err != nil {
			fail(err.Error())
		}

	case "toggle_voice":
		sess.ToggleVoice()

	case "select_facility":
		facility, err := h.findFacility(ctx, cmd.FacilityID)
		if err != nil {
			fail(err.Error())
			return
		}
		if err := sess.SelectFacility(*facility); err != nil {
			fail(err.Error())
		}

	case "clear_route":
		if err := sess.ClearRoute(); err != nil {
			fail(err.Error())
		}

	default:
		fail("unknown action " + cmd.Action)
	}
}

func (h *NavSocketHandler) findFacility(ctx context.Context, id int) (*domain.Facility, error) {
	facilities, err := h.Catalog.ListFacilities(ctx)
	if err != nil {
		return nil, errors.New("facility catalog unavailable")
	}

	for i := range facilities {
		if facilities[i].ID == id {
			return &facilities[i], nil
		}
	}

	return nil, errors.New("unknown facility")
}
