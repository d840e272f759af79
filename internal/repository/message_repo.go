package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vibechat/internal/model"
)

type MessageRepo interface {
	Append(ctx context.Context, msg *model.Message) error
	ListByChat(ctx context.Context, chatID string, limit int64) ([]*model.Message, error)
	EnsureIndexes(ctx context.Context) error
}

type messageRepo struct {
	collection *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{
		collection: db.Collection("messages"),
	}
}

func (r *messageRepo) Append(ctx context.Context, msg *model.Message) error {
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// ListByChat returns the chat's feed ordered by server timestamp
// ascending. limit <= 0 means no limit.
func (r *messageRepo) ListByChat(ctx context.Context, chatID string, limit int64) ([]*model.Message, error) {
	opts := options.Find().SetSort(map[string]interface{}{"createdAt": 1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, map[string]interface{}{"chatId": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: map[string]interface{}{"chatId": 1},
	})
	return err
}
