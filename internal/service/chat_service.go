package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vibechat/internal/model"
	"vibechat/internal/repository"
)

var (
	ErrNotChatMember = errors.New("user is not a member of this chat")
	ErrEmptyMessage  = errors.New("message text is empty")
)

const messageListLimit = 200

// ChatService handles the append-only message feed per chat pair.
type ChatService struct {
	messages    repository.MessageRepo
	broadcaster Broadcaster
}

// NewChatService creates a new chat service.
func NewChatService(messages repository.MessageRepo) *ChatService {
	return &ChatService{messages: messages}
}

// SetBroadcaster injects the WebSocket hub.
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SendMessage appends a plain text message and fans it out to both
// participants.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, text string) (*model.Message, error) {
	return s.append(ctx, chatID, senderID, text, model.MessageText, "")
}

// SendInvite appends a game invite message naming the variant. Written
// alongside the fresh session document on every challenge; there is no
// cross-document atomicity between the two.
func (s *ChatService) SendInvite(ctx context.Context, chatID, senderID string, gameType model.GameType) (*model.Message, error) {
	text := fmt.Sprintf("Let's play %s!", gameType)
	return s.append(ctx, chatID, senderID, text, model.MessageInvite, gameType)
}

// ListMessages returns the chat feed in timestamp order.
func (s *ChatService) ListMessages(ctx context.Context, chatID, userID string) ([]*model.Message, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}
	return s.messages.ListByChat(ctx, chatID, messageListLimit)
}

func (s *ChatService) append(ctx context.Context, chatID, senderID, text string, msgType model.MessageType, gameType model.GameType) (*model.Message, error) {
	if !model.IsChatMember(chatID, senderID) {
		return nil, ErrNotChatMember
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	msg := &model.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		Type:      msgType,
		GameType:  gameType,
		CreatedAt: time.Now(), // Server-assigned; orders the feed
	}

	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToChat(chatID, EventMessageNew, msg)
	}
	return msg, nil
}
