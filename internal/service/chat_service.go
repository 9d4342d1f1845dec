package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/util"
	"tamamali_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const quizGenerationPrompt = `You are TamaMali AI, an expert quiz generator specialized in creating quizzes for teachers.

**MARKDOWN & FORMATTING RULES:**
1. Use Markdown for ALL responses
2. Always use "- " for bullet points (never "*")
3. Use "**bold**" for important keywords, concepts, and terms
4. Use numbered lists for sequential steps: "1.", "2.", "3."
5. Start with a concise **bold introductory sentence**
6. End with a **bold concluding sentence or call-to-action**

**QUIZ GENERATION RULES:**

1. You can generate TWO types of quizzes: **IDENTIFICATION** and **MULTIPLE_CHOICE**.
   You ONLY help with quiz generation. If the user asks anything else, politely
   redirect them to quiz creation. Default to MULTIPLE_CHOICE when the type is unclear.

2. Format quiz data EXACTLY as valid JSON following these structures:

   IDENTIFICATION QUIZ FORMAT:
   ` + "```json" + `
   {
     "type": "IDENTIFICATION",
     "title": "Quiz Title Here",
     "description": "Optional description",
     "questions": [
       { "text": "Question text here?", "points": 5, "answer": "Correct answer here" }
     ]
   }
   ` + "```" + `

   MULTIPLE CHOICE QUIZ FORMAT:
   ` + "```json" + `
   {
     "type": "MULTIPLE_CHOICE",
     "title": "Quiz Title Here",
     "description": "Optional description",
     "questions": [
       {
         "text": "Question text here?",
         "points": 5,
         "options": [
           { "text": "Option A", "isCorrect": false },
           { "text": "Option B", "isCorrect": true },
           { "text": "Option C", "isCorrect": false },
           { "text": "Option D", "isCorrect": false }
         ]
       }
     ]
   }
   ` + "```" + `

3. Generate **5 questions** by default (or the number the user specifies).
   For multiple choice, ALWAYS provide exactly **4 options** per question with
   ONLY ONE correct answer. ALWAYS wrap your JSON response in a code block with
   ` + "```json and ```" + `. After the JSON, add a friendly, well-formatted message.

4. If the user mentions "identification", "fill in the blank" or "short answer",
   use the **IDENTIFICATION** type. If they mention "multiple choice", "MCQ",
   "options" or "choices", use **MULTIPLE_CHOICE**.

5. Be friendly, professional and educational. Never hallucinate facts, add no
   filler text or unnecessary disclaimers, and always encourage teachers.`

const chatGreeting = "**Hello! I'm TamaMali AI, your quiz generation assistant.**\n\n" +
	"I can help you create:\n" +
	"- **Identification quizzes** - Short answer questions\n" +
	"- **Multiple choice quizzes** - Questions with 4 options\n\n" +
	"**What would you like to create today?**"

var quizBlockRe = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")

// QuizDraft is the structured quiz the assistant embeds in its reply, ready
// to prefill the quiz editor. Identification questions carry the answer
// shorthand that quiz creation already understands.
type QuizDraft struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Questions   []struct {
		Text    string `json:"text"`
		Points  int    `json:"points"`
		Answer  string `json:"answer,omitempty"`
		Options []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"isCorrect"`
		} `json:"options,omitempty"`
	} `json:"questions"`
}

// ConversationStore persists per-session chat history.
type ConversationStore interface {
	Get(sessionID string) ([]repository.ConversationMessage, error)
	Save(sessionID string, history []repository.ConversationMessage) error
}

type ChatService struct {
	AI            *AIService
	Conversations ConversationStore
}

func NewChatService(ai *AIService, conversations ConversationStore) *ChatService {
	return &ChatService{AI: ai, Conversations: conversations}
}

type ChatReply struct {
	SessionID string     `json:"sessionId"`
	Message   string     `json:"message"`
	QuizDraft *QuizDraft `json:"quizDraft,omitempty"`
}

// Chat runs one turn of a quiz-generation conversation. An empty session id
// starts a new session; expired sessions restart transparently with a fresh
// history. The updated history is written back with its TTL refreshed.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	if message == "" {
		return nil, util.ErrMissingFields
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.Conversations.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []repository.ConversationMessage{
			{Role: "system", Content: quizGenerationPrompt},
			{Role: "assistant", Content: chatGreeting},
		}
	}
	history = append(history, repository.ConversationMessage{Role: "user", Content: message})

	messages := make([]AIChatMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	reply, err := s.AI.Chat(ctx, messages)
	if err != nil {
		return nil, err
	}

	history = append(history, repository.ConversationMessage{Role: "assistant", Content: reply})
	if err := s.Conversations.Save(sessionID, history); err != nil {
		logger.Log.Warn("failed to persist chat history", zap.String("sessionId", sessionID), zap.Error(err))
	}

	return &ChatReply{
		SessionID: sessionID,
		Message:   reply,
		QuizDraft: extractQuizDraft(reply),
	}, nil
}

// StreamEvent is one item of a streamed chat turn: a text fragment, the
// final quiz draft, or a terminal error.
type StreamEvent struct {
	Content string
	Draft   *QuizDraft
	Err     error
}

// ChatStream runs one conversation turn like Chat but emits the reply as
// fragments. The last events carry the extracted quiz draft (if any); history
// is persisted once the full reply has arrived. Every send honors ctx so the
// forwarding goroutine exits when the consumer disconnects mid-stream.
func (s *ChatService) ChatStream(ctx context.Context, sessionID, message string) (string, <-chan StreamEvent, error) {
	if message == "" {
		return "", nil, util.ErrMissingFields
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := s.Conversations.Get(sessionID)
	if err != nil {
		return "", nil, err
	}
	if history == nil {
		history = []repository.ConversationMessage{
			{Role: "system", Content: quizGenerationPrompt},
			{Role: "assistant", Content: chatGreeting},
		}
	}
	history = append(history, repository.ConversationMessage{Role: "user", Content: message})

	messages := make([]AIChatMessage, 0, len(history))
	for _, m := range history {
		messages = append(messages, AIChatMessage{Role: m.Role, Content: m.Content})
	}

	out, errChan := s.AI.ChatStream(ctx, messages)
	events := make(chan StreamEvent)

	go func() {
		defer close(events)

		var full strings.Builder
		for fragment := range out {
			full.WriteString(fragment)
			select {
			case events <- StreamEvent{Content: fragment}:
			case <-ctx.Done():
				return
			}
		}
		if err := <-errChan; err != nil {
			select {
			case events <- StreamEvent{Err: err}:
			case <-ctx.Done():
			}
			return
		}

		reply := full.String()
		history = append(history, repository.ConversationMessage{Role: "assistant", Content: reply})
		if err := s.Conversations.Save(sessionID, history); err != nil {
			logger.Log.Warn("failed to persist chat history", zap.String("sessionId", sessionID), zap.Error(err))
		}

		if draft := extractQuizDraft(reply); draft != nil {
			select {
			case events <- StreamEvent{Draft: draft}:
			case <-ctx.Done():
			}
		}
	}()

	return sessionID, events, nil
}

// extractQuizDraft pulls the first fenced json block out of the reply and
// parses it. A reply without a parseable block is still a valid chat turn.
func extractQuizDraft(reply string) *QuizDraft {
	match := quizBlockRe.FindStringSubmatch(reply)
	if match == nil {
		return nil
	}

	var draft QuizDraft
	if err := json.Unmarshal([]byte(match[1]), &draft); err != nil {
		logger.Log.Warn("assistant reply contained unparseable quiz JSON", zap.Error(err))
		return nil
	}
	return &draft
}
