package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy-quiz-service/internal/app"
	"academy-quiz-service/internal/domain"
	"academy-quiz-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	service, results := newTestService(t)
	if _, err := service.StartQuiz(context.Background(), "u1", domain.QuizSettings{
		Department: "web",
		Difficulty: "easy",
		TimeLimit:  300,
	}); err != nil {
		t.Fatalf("start quiz: %v", err)
	}

	wsHandler := NewWSHandler(service)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?user=u1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The session description arrives near the start of the stream.
	var sess sessionPayload
	readUntil(conn, t, "session", &sess)
	if len(sess.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(sess.Questions))
	}

	// Restricted input is blocked with a warning.
	writeMessage(conn, t, "input", app.InputEvent{Kind: "keydown", Key: "c", Ctrl: true})
	var warning warningPayload
	readUntil(conn, t, "warning", &warning)
	if warning.Message == "" {
		t.Fatalf("expected warning text")
	}

	// Advancing without a selection warns and stays put.
	writeMessage(conn, t, "advance", nil)
	readUntil(conn, t, "warning", &warning)
	if warning.Message != "Please select an answer" {
		t.Fatalf("unexpected warning %q", warning.Message)
	}

	// Navigation out of range surfaces an error.
	writeMessage(conn, t, "navigate", navigatePayload{Question: 9})
	var wsErr errorPayload
	readUntil(conn, t, "error", &wsErr)
	if wsErr.Message == "" {
		t.Fatalf("expected error text")
	}

	// Answer both questions; the last advance completes the session.
	writeMessage(conn, t, "select", selectPayload{Option: 0})
	writeMessage(conn, t, "advance", nil)
	writeMessage(conn, t, "select", selectPayload{Option: 1})
	writeMessage(conn, t, "advance", nil)

	var result domain.QuizResult
	readUntil(conn, t, "result", &result)
	if result.TotalQuestions != 2 {
		t.Fatalf("expected 2 questions in result, got %d", result.TotalQuestions)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(results.Records()) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected a results record")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	service, _ := newTestService(t)
	wsHandler := NewWSHandler(service)
	server := httptest.NewServer(http.HandlerFunc(wsHandler.ServeWS))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/?user=nobody"
	if _, resp, err := websocket.DefaultDialer.Dial(u, nil); err == nil {
		t.Fatalf("expected dial to fail without a session")
	} else if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", resp)
	}
}

func newTestService(t *testing.T) (*app.QuizService, *memory.ResultsLog) {
	t.Helper()
	bank := domain.Bank{
		"web": {
			"easy": {
				{ID: 1, Prompt: "q1", Options: []string{"a", "b"}, Correct: 0},
				{ID: 2, Prompt: "q2", Options: []string{"a", "b"}, Correct: 1},
			},
		},
	}
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(bank), time.Minute)
	results := memory.NewResultsLog()
	service := app.NewQuizService(memory.NewAccountStore(), banks, memory.NewSessionRegistry(), results, 0)
	return service, results
}

func writeMessage(conn *websocket.Conn, t *testing.T, msgType string, payload any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// readUntil reads messages until one of the wanted type arrives, decoding its
// payload into out. State snapshots stream continuously, so intermediate
// messages are skipped.
func readUntil(conn *websocket.Conn, t *testing.T, want string, out any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for i := 0; i < 50; i++ {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read while waiting for %s: %v", want, err)
		}
		if msg.Type != want {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(msg.Payload, out); err != nil {
				t.Fatalf("decode %s payload: %v", want, err)
			}
		}
		return
	}
	t.Fatalf("did not receive %s message", want)
}
