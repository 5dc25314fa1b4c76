package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/validation"
	"github.com/edupilot/edupilot/internal/logging"
)

const (
	MsgLoadChat  = "Failed to load chat history"
	MsgSendChat  = "Sorry, I couldn't process your request. Please try again!"
	MsgClearChat = "Failed to clear chat"
)

type chatInput struct {
	Message string `json:"message" validate:"notblank"`
}

func init() {
	validation.RegisterMessage("chatInput.message", "notblank", "Please type a message")
}

// ChatService holds the EduBot transcript. A user message joins the
// transcript before the server answers and stays there when the request
// fails.
type ChatService interface {
	Load(ctx context.Context) ([]models.ChatMessage, error)
	Send(ctx context.Context, message string) (models.ChatMessage, error)
	ClearHistory(ctx context.Context) error
	Messages() []models.ChatMessage
	Clear()
}

type chatService struct {
	client client.Client
	logger logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	messages []models.ChatMessage
	// epoch changes on every Clear; replies from an older epoch are dropped.
	epoch uint64
}

func NewChatService(c client.Client, logger logging.Logger) ChatService {
	return &chatService{client: c, logger: logger, now: time.Now}
}

// Load replaces the transcript with the server's session. A failed load
// keeps what is held.
func (s *chatService) Load(ctx context.Context) ([]models.ChatMessage, error) {
	epoch := s.currentEpoch()
	session, err := s.client.ChatSession(ctx)
	if err != nil {
		return s.Messages(), fmt.Errorf("load chat: %w", err)
	}

	var msgs []models.ChatMessage
	if session != nil {
		msgs = append(msgs, session.Messages...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.Debug(ctx, "dropping chat session loaded before clear")
		return cloneMessages(s.messages), nil
	}
	s.messages = msgs
	return cloneMessages(s.messages), nil
}

func (s *chatService) Send(ctx context.Context, message string) (models.ChatMessage, error) {
	in := chatInput{Message: strings.TrimSpace(message)}
	if err := validation.Struct(in); err != nil {
		return models.ChatMessage{}, err
	}

	s.mu.Lock()
	s.messages = append(s.messages, models.ChatMessage{
		Role:      models.ChatRoleUser,
		Content:   in.Message,
		CreatedAt: s.now(),
	})
	epoch := s.epoch
	s.mu.Unlock()

	reply, err := s.client.SendChatMessage(ctx, models.ChatRequest{Message: in.Message})
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("send chat message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch == epoch {
		s.messages = append(s.messages, reply)
	}
	return reply, nil
}

// ClearHistory deletes the conversation on the server and empties the
// transcript. On failure the transcript is kept.
func (s *chatService) ClearHistory(ctx context.Context) error {
	if err := s.client.ClearChat(ctx); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	s.Clear()
	return nil
}

func (s *chatService) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMessages(s.messages)
}

func (s *chatService) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.epoch++
	s.mu.Unlock()
}

func (s *chatService) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func cloneMessages(in []models.ChatMessage) []models.ChatMessage {
	if len(in) == 0 {
		return nil
	}
	return append([]models.ChatMessage(nil), in...)
}
