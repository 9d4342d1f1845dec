package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"tamamali_backend/internal/config"
	"tamamali_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConversationStore struct {
	histories map[string][]repository.ConversationMessage
}

func (f *fakeConversationStore) Get(sessionID string) ([]repository.ConversationMessage, error) {
	return f.histories[sessionID], nil
}

func (f *fakeConversationStore) Save(sessionID string, history []repository.ConversationMessage) error {
	if f.histories == nil {
		f.histories = make(map[string][]repository.ConversationMessage)
	}
	f.histories[sessionID] = history
	return nil
}

func sseChunk(content string) string {
	return fmt.Sprintf("data: {\"choices\":[{\"delta\":{\"content\":%s}}]}\n\n", strconv.Quote(content))
}

// completionServer streams the given fragments and terminates the stream.
func completionServer(fragments []string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, f := range fragments {
			fmt.Fprint(w, sseChunk(f))
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
}

func TestChatStreamDeliversFragmentsAndDraft(t *testing.T) {
	fragments := []string{
		"**Here is your quiz!**\n\n",
		"```json\n{\"type\":\"IDENTIFICATION\",\"title\":\"Capitals\"," +
			"\"questions\":[{\"text\":\"Capital of France?\",\"points\":5,\"answer\":\"Paris\"}]}\n```",
	}
	srv := completionServer(fragments)
	defer srv.Close()

	store := &fakeConversationStore{}
	svc := NewChatService(NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "m"}), store)

	sessionID, events, err := svc.ChatStream(context.Background(), "", "identification quiz about capitals")
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	var reply strings.Builder
	var draft *QuizDraft
	for ev := range events {
		assert.NoError(t, ev.Err)
		reply.WriteString(ev.Content)
		if ev.Draft != nil {
			draft = ev.Draft
		}
	}

	assert.Equal(t, strings.Join(fragments, ""), reply.String())
	assert.NotNil(t, draft)
	assert.Equal(t, "Capitals", draft.Title)

	history := store.histories[sessionID]
	assert.Len(t, history, 4, "system, greeting, user and assistant turns")
	assert.Equal(t, "assistant", history[3].Role)
	assert.Equal(t, reply.String(), history[3].Content)
}

func TestChatStreamStopsWhenConsumerGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for {
			fmt.Fprint(w, sseChunk("x"))
			flusher.Flush()
			select {
			case <-r.Context().Done():
				return
			case <-time.After(5 * time.Millisecond):
			}
		}
	}))
	defer srv.Close()

	svc := NewChatService(NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "m"}), &fakeConversationStore{})

	ctx, cancel := context.WithCancel(context.Background())
	_, events, err := svc.ChatStream(ctx, "", "make a quiz")
	assert.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "x", ev.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("no stream output before cancellation")
	}

	// The consumer walks away without draining; the forwarding goroutine must
	// still wind down and close the channel instead of parking on a send.
	cancel()
	time.Sleep(200 * time.Millisecond)

	select {
	case _, ok := <-events:
		assert.False(t, ok, "expected closed channel, got a buffered event from a parked goroutine")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed after cancellation")
	}
}

func TestExtractQuizDraftMultipleChoice(t *testing.T) {
	reply := "**I've generated your quiz!**\n\n```json\n" +
		`{
  "type": "MULTIPLE_CHOICE",
  "title": "Solar System Basics",
  "questions": [
    {
      "text": "Which planet is closest to the sun?",
      "points": 5,
      "options": [
        { "text": "Venus", "isCorrect": false },
        { "text": "Mercury", "isCorrect": true },
        { "text": "Mars", "isCorrect": false },
        { "text": "Earth", "isCorrect": false }
      ]
    }
  ]
}` + "\n```\n\n**Click Create Quiz to save it!**"

	draft := extractQuizDraft(reply)
	assert.NotNil(t, draft)
	assert.Equal(t, "MULTIPLE_CHOICE", draft.Type)
	assert.Equal(t, "Solar System Basics", draft.Title)
	assert.Len(t, draft.Questions, 1)
	assert.Len(t, draft.Questions[0].Options, 4)
	assert.True(t, draft.Questions[0].Options[1].IsCorrect)
}

func TestExtractQuizDraftIdentification(t *testing.T) {
	reply := "```json\n" +
		`{"type":"IDENTIFICATION","title":"Capitals","questions":[{"text":"Capital of France?","points":5,"answer":"Paris"}]}` +
		"\n```"

	draft := extractQuizDraft(reply)
	assert.NotNil(t, draft)
	assert.Equal(t, "IDENTIFICATION", draft.Type)
	assert.Equal(t, "Paris", draft.Questions[0].Answer)
}

func TestExtractQuizDraftAbsent(t *testing.T) {
	assert.Nil(t, extractQuizDraft("**I'm specialized in creating quizzes for teachers!**"))
}

func TestExtractQuizDraftMalformedJSON(t *testing.T) {
	reply := "```json\n{not valid json\n```"
	assert.Nil(t, extractQuizDraft(reply))
}
