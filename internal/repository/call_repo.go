package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vibechat/internal/model"
)

type CallRepo interface {
	// Put replaces the pair's call document; starting a new call
	// discards any stale one.
	Put(ctx context.Context, call *model.Call) error
	Get(ctx context.Context, chatID string) (*model.Call, error)
	SetAnswer(ctx context.Context, chatID string, answer *model.SessionDescription) error
	// AddCandidate appends one ICE candidate to the caller's or
	// callee's list.
	AddCandidate(ctx context.Context, chatID string, fromCaller bool, cand model.ICECandidate) error
	Delete(ctx context.Context, chatID string) error
}

type callRepo struct {
	collection *mongo.Collection
}

func NewCallRepo(db *mongo.Database) CallRepo {
	return &callRepo{
		collection: db.Collection("calls"),
	}
}

func (r *callRepo) Put(ctx context.Context, call *model.Call) error {
	_, err := r.collection.ReplaceOne(ctx,
		map[string]interface{}{"_id": call.ChatID},
		call,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *callRepo) Get(ctx context.Context, chatID string) (*model.Call, error) {
	var call model.Call
	err := r.collection.FindOne(ctx, map[string]interface{}{"_id": chatID}).Decode(&call)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No active call
		}
		return nil, err
	}
	return &call, nil
}

func (r *callRepo) SetAnswer(ctx context.Context, chatID string, answer *model.SessionDescription) error {
	_, err := r.collection.UpdateOne(ctx,
		map[string]interface{}{"_id": chatID},
		map[string]interface{}{"$set": map[string]interface{}{"answer": answer}},
	)
	return err
}

func (r *callRepo) AddCandidate(ctx context.Context, chatID string, fromCaller bool, cand model.ICECandidate) error {
	field := "answerCandidates"
	if fromCaller {
		field = "offerCandidates"
	}
	_, err := r.collection.UpdateOne(ctx,
		map[string]interface{}{"_id": chatID},
		map[string]interface{}{"$push": map[string]interface{}{field: cand}},
	)
	return err
}

func (r *callRepo) Delete(ctx context.Context, chatID string) error {
	_, err := r.collection.DeleteOne(ctx, map[string]interface{}{"_id": chatID})
	return err
}
