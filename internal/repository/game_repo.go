package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vibechat/internal/model"
)

// ErrVersionConflict is returned when a versioned write was computed
// from a snapshot that is no longer current. Callers re-read and retry
// or surface the conflict.
var ErrVersionConflict = errors.New("game session version conflict")

// sessionTTL expires abandoned session documents.
const sessionTTL = 24 * time.Hour

type GameRepo interface {
	// Put replaces the pair's session document unconditionally. A new
	// challenge overwrites whatever game was in progress.
	Put(ctx context.Context, session *model.GameSession) error
	Get(ctx context.Context, chatID string) (*model.GameSession, error)
	// UpdateVersioned writes the session only if the stored version
	// still matches the version the snapshot was read at, then bumps
	// it. Returns ErrVersionConflict on a stale snapshot.
	UpdateVersioned(ctx context.Context, session *model.GameSession) error
	EnsureIndexes(ctx context.Context) error
}

type gameRepo struct {
	collection *mongo.Collection
}

func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection("game_sessions"),
	}
}

func (r *gameRepo) Put(ctx context.Context, session *model.GameSession) error {
	session.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx,
		map[string]interface{}{"_id": session.ChatID},
		session,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *gameRepo) Get(ctx context.Context, chatID string) (*model.GameSession, error) {
	var session model.GameSession
	err := r.collection.FindOne(ctx, map[string]interface{}{"_id": chatID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No session for this chat
		}
		return nil, err
	}
	return &session, nil
}

func (r *gameRepo) UpdateVersioned(ctx context.Context, session *model.GameSession) error {
	expected := session.Version
	session.Version = expected + 1
	session.UpdatedAt = time.Now()

	res, err := r.collection.ReplaceOne(ctx,
		map[string]interface{}{"_id": session.ChatID, "version": expected},
		session,
	)
	if err != nil {
		session.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		session.Version = expected
		return ErrVersionConflict
	}
	return nil
}

func (r *gameRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]interface{}{"updatedAt": 1},
		Options: options.Index().SetExpireAfterSeconds(int32(sessionTTL.Seconds())),
	})
	return err
}
