// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection holds one document per slot
const DefaultCollection = "kv_slot"

type slotDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoKV stores slots as documents keyed by _id
type MongoKV struct {
	coll *mongo.Collection
}

func NewMongoKV(coll *mongo.Collection) *MongoKV {
	return &MongoKV{coll: coll}
}

func (k *MongoKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDocument
	err := k.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return []byte(doc.Payload), true, nil
}

func (k *MongoKV) Put(ctx context.Context, key string, value []byte) error {
	doc := slotDocument{
		Key:       key,
		Payload:   string(value),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := k.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (k *MongoKV) Remove(ctx context.Context, key string) error {
	_, err := k.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	if err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", key, err)
	}
	return nil
}
