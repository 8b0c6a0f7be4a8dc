package services

import (
	"context"

	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
)

// chatInstruction is the lighter system prompt used for the multi-turn
// flow: the model interviews the customer before recommending.
const chatInstruction = "You are a friendly Toyota vehicle matching expert. " +
	"Using the vehicle data above, ask the customer up to 6 sequential " +
	"clarifying questions about their needs and budget, one question at a " +
	"time, waiting for each answer. After the questions, recommend 3 Toyota " +
	"models that best fit their answers."

// ChatSession is a single multi-turn conversation with the completion
// service. The log is seeded with the catalog text plus the interview
// instruction and grows monotonically for the life of the session; there is
// no summarization or truncation, which caps how long a session can
// usefully run.
type ChatSession struct {
	client  *GeminiClient
	history []geminiContent
}

func NewChatSession(client *GeminiClient, catalogText string) *ChatSession {
	seed := catalogText + "\n\n" + chatInstruction
	return &ChatSession{
		client: client,
		history: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: seed}}},
		},
	}
}

// Send appends the customer's utterance, submits the whole log, records the
// reply and returns it. On failure the utterance is not kept, so the caller
// can retry the same turn.
func (s *ChatSession) Send(ctx context.Context, message string) (string, error) {
	turn := append(s.history, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	reply, err := s.client.generate(ctx, turn)
	if err != nil {
		return "", err
	}

	s.history = append(turn, geminiContent{
		Role:  "model",
		Parts: []geminiPart{{Text: reply}},
	})

	logger.Debug("chat turn complete", "history_len", len(s.history))
	return reply, nil
}

// Turns reports the current conversation length, including the seed.
func (s *ChatSession) Turns() int {
	return len(s.history)
}
