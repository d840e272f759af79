package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibechat/internal/model"
	"vibechat/internal/repository"
)

var (
	ErrNoCall        = errors.New("no active call for this chat")
	ErrNotCallee     = errors.New("only the called party may answer")
	ErrMissingOffer  = errors.New("offer is required")
	ErrMissingAnswer = errors.New("answer is required")
)

// CallService relays the fixed offer/answer/ICE signaling handshake
// between the two chat participants. It never inspects SDP; media flows
// peer to peer.
type CallService struct {
	calls       repository.CallRepo
	broadcaster Broadcaster
}

// NewCallService creates a new call service.
func NewCallService(calls repository.CallRepo) *CallService {
	return &CallService{calls: calls}
}

// SetBroadcaster injects the WebSocket hub.
func (s *CallService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartCall writes the caller's offer, replacing any stale call
// document for the pair, and notifies the other participant.
func (s *CallService) StartCall(ctx context.Context, chatID, callerID string, offer *model.SessionDescription) (*model.Call, error) {
	if !model.IsChatMember(chatID, callerID) {
		return nil, ErrNotChatMember
	}
	if offer == nil || offer.SDP == "" {
		return nil, ErrMissingOffer
	}

	call := &model.Call{
		ChatID:    chatID,
		CallerID:  callerID,
		Offer:     offer,
		CreatedAt: time.Now(),
	}
	if err := s.calls.Put(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to start call: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(chatID, model.OtherMember(chatID, callerID), EventCallUpdate, call)
	}
	return call, nil
}

// AnswerCall records the callee's answer and notifies the caller.
func (s *CallService) AnswerCall(ctx context.Context, chatID, userID string, answer *model.SessionDescription) (*model.Call, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}
	if answer == nil || answer.SDP == "" {
		return nil, ErrMissingAnswer
	}

	call, err := s.calls.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, ErrNoCall
	}
	if userID == call.CallerID {
		return nil, ErrNotCallee
	}

	if err := s.calls.SetAnswer(ctx, chatID, answer); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}
	call.Answer = answer

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(chatID, call.CallerID, EventCallUpdate, call)
	}
	return call, nil
}

// AddCandidate appends one ICE candidate from either side and relays it
// to the other participant.
func (s *CallService) AddCandidate(ctx context.Context, chatID, userID string, cand model.ICECandidate) error {
	if !model.IsChatMember(chatID, userID) {
		return ErrNotChatMember
	}

	call, err := s.calls.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if call == nil {
		return ErrNoCall
	}

	fromCaller := userID == call.CallerID
	if err := s.calls.AddCandidate(ctx, chatID, fromCaller, cand); err != nil {
		return fmt.Errorf("failed to add candidate: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(chatID, model.OtherMember(chatID, userID), EventCallCandidate, map[string]interface{}{
			"from":      userID,
			"candidate": cand,
		})
	}
	return nil
}

// GetCall returns the pair's current signaling document.
func (s *CallService) GetCall(ctx context.Context, chatID, userID string) (*model.Call, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}
	call, err := s.calls.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, ErrNoCall
	}
	return call, nil
}

// EndCall removes the signaling document and tells both sides to tear
// down.
func (s *CallService) EndCall(ctx context.Context, chatID, userID string) error {
	if !model.IsChatMember(chatID, userID) {
		return ErrNotChatMember
	}
	if err := s.calls.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("failed to end call: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToChat(chatID, EventCallEnded, map[string]string{"endedBy": userID})
	}
	return nil
}
