package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vibechat/internal/cache"
	"vibechat/internal/game"
	"vibechat/internal/model"
	"vibechat/internal/repository"
)

var ErrNoSession = errors.New("no game session for this chat")

// GameService owns the shared session lifecycle and routes move intents
// through the pure state machines in internal/game. Every mutation is a
// read-validate-write cycle guarded by the session's version token;
// writes computed from a stale snapshot surface as
// repository.ErrVersionConflict and the caller re-reads.
type GameService struct {
	games       repository.GameRepo
	gameCache   cache.GameCache
	chatSvc     *ChatService
	broadcaster Broadcaster

	rpsClearDelay      time.Duration
	triviaAdvanceDelay time.Duration
}

// NewGameService creates a new game service.
func NewGameService(games repository.GameRepo, gameCache cache.GameCache, chatSvc *ChatService) *GameService {
	return &GameService{
		games:              games,
		gameCache:          gameCache,
		chatSvc:            chatSvc,
		rpsClearDelay:      3 * time.Second,
		triviaAdvanceDelay: 2 * time.Second,
	}
}

// SetBroadcaster injects the WebSocket hub.
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetDelays overrides the deferred round-clear and question-advance
// delays.
func (s *GameService) SetDelays(rpsClear, triviaAdvance time.Duration) {
	s.rpsClearDelay = rpsClear
	s.triviaAdvanceDelay = triviaAdvance
}

// Challenge creates a fresh session for the pair, silently discarding
// any game in progress, and posts the invite message to the chat feed.
func (s *GameService) Challenge(ctx context.Context, chatID, userID string, gameType model.GameType) (*model.GameSession, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}

	session, err := game.NewSession(chatID, userID, gameType, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.games.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.cacheSnapshot(ctx, session)

	if _, err := s.chatSvc.SendInvite(ctx, chatID, userID, gameType); err != nil {
		return nil, fmt.Errorf("session created but invite failed: %w", err)
	}

	s.publish(session)
	return session, nil
}

// Accept transitions the pair's waiting session to active.
func (s *GameService) Accept(ctx context.Context, chatID, userID string) (*model.GameSession, error) {
	return s.mutate(ctx, chatID, userID, func(sess *model.GameSession) error {
		return game.Accept(sess, userID)
	})
}

// Get returns the pair's current session snapshot, preferring the
// cached copy.
func (s *GameService) Get(ctx context.Context, chatID, userID string) (*model.GameSession, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}

	if cached, err := s.gameCache.GetSnapshot(ctx, chatID); err == nil && cached != nil {
		return cached, nil
	}

	session, err := s.games.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}
	return session, nil
}

// Move applies one tic-tac-toe move.
func (s *GameService) Move(ctx context.Context, chatID, userID string, cell int) (*model.GameSession, error) {
	return s.mutate(ctx, chatID, userID, func(sess *model.GameSession) error {
		return game.ProposeMove(sess, userID, cell)
	})
}

// Reset clears the tic-tac-toe board for a rematch; the host starts.
func (s *GameService) Reset(ctx context.Context, chatID, userID string) (*model.GameSession, error) {
	return s.mutate(ctx, chatID, userID, func(sess *model.GameSession) error {
		return game.ResetBoard(sess)
	})
}

// Choose records one rock-paper-scissors choice. The submission that
// completes the round schedules the deferred round clear; the clear is
// idempotent, so both sides racing to schedule it is harmless.
func (s *GameService) Choose(ctx context.Context, chatID, userID string, choice model.RPSChoice) (*model.GameSession, error) {
	var roundDone bool
	session, err := s.mutate(ctx, chatID, userID, func(sess *model.GameSession) error {
		var err error
		roundDone, err = game.SubmitChoice(sess, userID, choice)
		return err
	})
	if err != nil {
		return nil, err
	}
	if roundDone {
		time.AfterFunc(s.rpsClearDelay, func() { s.clearRound(chatID) })
	}
	return session, nil
}

// Answer records one trivia answer. When both roles have answered the
// current question, the question advance is scheduled after a fixed
// delay.
func (s *GameService) Answer(ctx context.Context, chatID, userID, answer string) (*model.GameSession, error) {
	var bothAnswered bool
	session, err := s.mutate(ctx, chatID, userID, func(sess *model.GameSession) error {
		var err error
		bothAnswered, err = game.SubmitAnswer(sess, userID, answer)
		return err
	})
	if err != nil {
		return nil, err
	}
	if bothAnswered {
		time.AfterFunc(s.triviaAdvanceDelay, func() { s.advanceQuestion(chatID) })
	}
	return session, nil
}

func (s *GameService) mutate(ctx context.Context, chatID, userID string, fn func(*model.GameSession) error) (*model.GameSession, error) {
	if !model.IsChatMember(chatID, userID) {
		return nil, ErrNotChatMember
	}

	session, err := s.games.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrNoSession
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	if err := s.games.UpdateVersioned(ctx, session); err != nil {
		return nil, err
	}
	s.cacheSnapshot(ctx, session)
	s.publish(session)
	return session, nil
}

// clearRound resets the round-scoped RPS fields after the showdown
// delay. Runs on its own context; conflicts mean the other participant
// got there first, which is fine.
func (s *GameService) clearRound(chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := s.games.Get(ctx, chatID)
	if err != nil || session == nil {
		return
	}
	if session.GameType != model.GameRPS || session.RoundWinner == "" {
		return
	}

	if err := game.ClearRound(session); err != nil {
		return
	}
	if err := s.games.UpdateVersioned(ctx, session); err != nil {
		if !errors.Is(err, repository.ErrVersionConflict) {
			log.Printf("clear round for chat %s: %v", chatID, err)
		}
		return
	}
	s.cacheSnapshot(ctx, session)
	s.publish(session)
}

// advanceQuestion moves the trivia session forward once both answers
// are in, or finishes it on the last question.
func (s *GameService) advanceQuestion(chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := s.games.Get(ctx, chatID)
	if err != nil || session == nil {
		return
	}
	if session.GameType != model.GameTrivia || session.Status == model.GameFinished {
		return
	}
	if session.Answers[model.RoleHost] == "" || session.Answers[model.RoleGuest] == "" {
		return
	}

	if err := game.AdvanceQuestion(session); err != nil {
		return
	}
	if err := s.games.UpdateVersioned(ctx, session); err != nil {
		if !errors.Is(err, repository.ErrVersionConflict) {
			log.Printf("advance question for chat %s: %v", chatID, err)
		}
		return
	}
	s.cacheSnapshot(ctx, session)
	s.publish(session)
}

func (s *GameService) cacheSnapshot(ctx context.Context, session *model.GameSession) {
	if err := s.gameCache.SetSnapshot(ctx, session); err != nil {
		log.Printf("cache snapshot for chat %s: %v", session.ChatID, err)
	}
}

func (s *GameService) publish(session *model.GameSession) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToChat(session.ChatID, EventGameUpdate, session)
	}
}
