package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vibechat/internal/model"
	"vibechat/internal/repository"
)

const (
	testHost  = "alice"
	testGuest = "bob"
)

var testChatID = model.ChatIDFor(testHost, testGuest)

// fakeGameRepo mimics the versioned document store in memory.
type fakeGameRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.GameSession
	conflict bool // Force the next versioned write to fail
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{sessions: make(map[string]*model.GameSession)}
}

func (r *fakeGameRepo) Put(ctx context.Context, s *model.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ChatID] = cloneSession(s)
	return nil
}

func (r *fakeGameRepo) Get(ctx context.Context, chatID string) (*model.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSession(r.sessions[chatID]), nil
}

func (r *fakeGameRepo) UpdateVersioned(ctx context.Context, s *model.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflict {
		return repository.ErrVersionConflict
	}
	stored := r.sessions[s.ChatID]
	if stored == nil || stored.Version != s.Version {
		return repository.ErrVersionConflict
	}
	s.Version++
	r.sessions[s.ChatID] = cloneSession(s)
	return nil
}

func (r *fakeGameRepo) EnsureIndexes(ctx context.Context) error { return nil }

func cloneSession(s *model.GameSession) *model.GameSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.Board != nil {
		c.Board = append([]string(nil), s.Board...)
	}
	if s.Scores != nil {
		c.Scores = make(map[model.Role]int, len(s.Scores))
		for k, v := range s.Scores {
			c.Scores[k] = v
		}
	}
	if s.Choices != nil {
		c.Choices = make(map[model.Role]model.RPSChoice, len(s.Choices))
		for k, v := range s.Choices {
			c.Choices[k] = v
		}
	}
	if s.Answers != nil {
		c.Answers = make(map[model.Role]string, len(s.Answers))
		for k, v := range s.Answers {
			c.Answers[k] = v
		}
	}
	return &c
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
}

func (r *fakeMessageRepo) Append(ctx context.Context, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) ListByChat(ctx context.Context, chatID string, limit int64) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeGameCache struct {
	mu        sync.Mutex
	snapshots map[string]*model.GameSession
}

func newFakeGameCache() *fakeGameCache {
	return &fakeGameCache{snapshots: make(map[string]*model.GameSession)}
}

func (c *fakeGameCache) SetSnapshot(ctx context.Context, s *model.GameSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[s.ChatID] = cloneSession(s)
	return nil
}

func (c *fakeGameCache) GetSnapshot(ctx context.Context, chatID string) (*model.GameSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSession(c.snapshots[chatID]), nil
}

func (c *fakeGameCache) Delete(ctx context.Context, chatID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, chatID)
	return nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) BroadcastToChat(chatID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, msgType)
}

func (b *fakeBroadcaster) BroadcastToUser(chatID, userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, msgType)
}

func (b *fakeBroadcaster) has(msgType string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.events {
		if e == msgType {
			return true
		}
	}
	return false
}

func newTestGameService() (*GameService, *fakeGameRepo, *fakeMessageRepo, *fakeBroadcaster) {
	games := newFakeGameRepo()
	messages := &fakeMessageRepo{}
	chatSvc := NewChatService(messages)
	svc := NewGameService(games, newFakeGameCache(), chatSvc)
	svc.SetDelays(10*time.Millisecond, 10*time.Millisecond)
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)
	return svc, games, messages, b
}

func TestChallengeWritesInviteAndSnapshot(t *testing.T) {
	svc, games, messages, b := newTestGameService()
	ctx := context.Background()

	session, err := svc.Challenge(ctx, testChatID, testHost, model.GameTicTacToe)
	if err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if session.Status != model.GameWaiting {
		t.Fatalf("expected waiting session, got %q", session.Status)
	}

	stored, _ := games.Get(ctx, testChatID)
	if stored == nil {
		t.Fatal("session not persisted")
	}

	msgs, _ := messages.ListByChat(ctx, testChatID, 0)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 invite message, got %d", len(msgs))
	}
	if msgs[0].Type != model.MessageInvite || msgs[0].GameType != model.GameTicTacToe {
		t.Fatalf("unexpected invite message: %+v", msgs[0])
	}
	if !b.has(EventGameUpdate) {
		t.Fatal("no game_update broadcast after challenge")
	}
}

func TestChallengeOverwritesInProgressGame(t *testing.T) {
	svc, games, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameTicTacToe); err != nil {
		t.Fatalf("first challenge: %v", err)
	}
	if _, err := svc.Accept(ctx, testChatID, testGuest); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Move(ctx, testChatID, testHost, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	if _, err := svc.Challenge(ctx, testChatID, testGuest, model.GameRPS); err != nil {
		t.Fatalf("second challenge: %v", err)
	}

	stored, _ := games.Get(ctx, testChatID)
	if stored.GameType != model.GameRPS {
		t.Fatalf("expected rps session, got %q", stored.GameType)
	}
	if stored.HostID != testGuest {
		t.Fatalf("expected new host %q, got %q", testGuest, stored.HostID)
	}
	if stored.Status != model.GameWaiting {
		t.Fatalf("expected fresh waiting session, got %q", stored.Status)
	}
}

func TestMutationsRequireChatMembership(t *testing.T) {
	svc, _, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, "mallory", model.GameTicTacToe); !errors.Is(err, ErrNotChatMember) {
		t.Fatalf("challenge: expected ErrNotChatMember, got %v", err)
	}

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameTicTacToe); err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if _, err := svc.Accept(ctx, testChatID, "mallory"); !errors.Is(err, ErrNotChatMember) {
		t.Fatalf("accept: expected ErrNotChatMember, got %v", err)
	}
	if _, err := svc.Move(ctx, testChatID, "mallory", 0); !errors.Is(err, ErrNotChatMember) {
		t.Fatalf("move: expected ErrNotChatMember, got %v", err)
	}
}

func TestVersionConflictSurfaces(t *testing.T) {
	svc, games, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameTicTacToe); err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if _, err := svc.Accept(ctx, testChatID, testGuest); err != nil {
		t.Fatalf("accept: %v", err)
	}

	games.conflict = true
	if _, err := svc.Move(ctx, testChatID, testHost, 0); !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestRPSRoundClearsAfterDelay(t *testing.T) {
	svc, games, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameRPS); err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if _, err := svc.Accept(ctx, testChatID, testGuest); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.Choose(ctx, testChatID, testHost, model.RPSRock); err != nil {
		t.Fatalf("host choice: %v", err)
	}
	session, err := svc.Choose(ctx, testChatID, testGuest, model.RPSScissors)
	if err != nil {
		t.Fatalf("guest choice: %v", err)
	}
	if session.RoundWinner != string(model.RoleHost) {
		t.Fatalf("expected host round win, got %q", session.RoundWinner)
	}

	time.Sleep(100 * time.Millisecond)

	stored, _ := games.Get(ctx, testChatID)
	if stored.RoundWinner != "" || len(stored.Choices) != 0 {
		t.Fatalf("round not cleared: winner=%q choices=%v", stored.RoundWinner, stored.Choices)
	}
	if stored.Scores[model.RoleHost] != 1 {
		t.Fatalf("expected host score to persist, got %v", stored.Scores)
	}
}

func TestTriviaAdvancesAfterDelay(t *testing.T) {
	svc, games, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameTrivia); err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if _, err := svc.Accept(ctx, testChatID, testGuest); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.Answer(ctx, testChatID, testHost, "Paris"); err != nil {
		t.Fatalf("host answer: %v", err)
	}
	if _, err := svc.Answer(ctx, testChatID, testGuest, "London"); err != nil {
		t.Fatalf("guest answer: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	stored, _ := games.Get(ctx, testChatID)
	if stored.CurrentQIndex != 1 {
		t.Fatalf("expected advance to question 1, got %d", stored.CurrentQIndex)
	}
	if len(stored.Answers) != 0 {
		t.Fatalf("expected answers cleared, got %v", stored.Answers)
	}
	if stored.Scores[model.RoleHost] != 10 || stored.Scores[model.RoleGuest] != 0 {
		t.Fatalf("unexpected scores %v", stored.Scores)
	}
}

func TestGetRejectsNonMember(t *testing.T) {
	svc, _, _, _ := newTestGameService()
	ctx := context.Background()

	if _, err := svc.Challenge(ctx, testChatID, testHost, model.GameTicTacToe); err != nil {
		t.Fatalf("challenge: %v", err)
	}
	if _, err := svc.Get(ctx, testChatID, "mallory"); !errors.Is(err, ErrNotChatMember) {
		t.Fatalf("expected ErrNotChatMember, got %v", err)
	}
}

func TestGetWithoutSession(t *testing.T) {
	svc, _, _, _ := newTestGameService()

	if _, err := svc.Get(context.Background(), testChatID, testHost); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
