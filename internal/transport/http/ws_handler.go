package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"academy-quiz-service/internal/app"
	"academy-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives a live quiz session over a websocket: the client forwards
// user intents (select, navigate, advance) and raw input events; the server
// streams state snapshots, warnings, and the final result.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option int `json:"option"`
}

type navigatePayload struct {
	Question int `json:"question"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type sessionPayload struct {
	SessionID string              `json:"sessionId"`
	Settings  domain.QuizSettings `json:"settings"`
	Questions []domain.Question   `json:"questions"`
}

type warningPayload struct {
	Message string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// session engine.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		http.Error(w, "missing user", http.StatusBadRequest)
		return
	}

	session, err := h.service.Session(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		resultSent := false
		for {
			select {
			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: snapshot}:
				case <-closeSignals:
					return
				}
				if snapshot.Result != nil && !resultSent {
					resultSent = true
					select {
					case send <- outboundMessage[any]{Type: "result", Payload: *snapshot.Result}:
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{
		SessionID: session.ID(),
		Settings:  session.Settings(),
		Questions: session.Questions(),
	}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			if err := session.SelectOption(payload.Option); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "navigate":
			var payload navigatePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid navigate payload"}}
				continue
			}
			if err := session.NavigateTo(payload.Question); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "advance":
			if err := session.Advance(); err != nil {
				if errors.Is(err, domain.ErrNoSelection) {
					send <- outboundMessage[any]{Type: "warning", Payload: warningPayload{Message: "Please select an answer"}}
				} else {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				}
			}
		case "input":
			var event app.InputEvent
			if err := json.Unmarshal(inbound.Payload, &event); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid input payload"}}
				continue
			}
			verdict := session.HandleInput(event)
			if verdict.Blocked {
				send <- outboundMessage[any]{Type: "warning", Payload: warningPayload{Message: verdict.Warning}}
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
