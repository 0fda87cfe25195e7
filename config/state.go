package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"backend/engine"
	"backend/models"
)

// Store is the single state owner for the whole process. Controllers talk
// to it; Mongo only ever sees snapshots after the fact.
var Store *engine.Store

// stateDocID keys the single live-state document in the state collection.
const stateDocID = "live"

type stateDoc struct {
	ID       string                `bson:"_id"`
	SavedAt  time.Time             `bson:"saved_at"`
	Document models.BackupDocument `bson:"document"`
}

// SaveSnapshot persists the snapshot produced by an engine mutation. It is
// registered as the engine's change hook and runs off the request path;
// persistence here is best-effort, the in-memory snapshot stays the source
// of truth for the session.
func SaveSnapshot(doc models.BackupDocument, logger *zap.Logger) {
	if StateCollection == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := StateCollection.UpdateOne(ctx,
		bson.M{"_id": stateDocID},
		bson.M{"$set": stateDoc{ID: stateDocID, SavedAt: time.Now(), Document: doc}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		logger.Warn("snapshot persistence failed", zap.Error(err))
	}
}

// LoadSnapshot restores the last persisted state into the store at boot.
// A missing document is a fresh install, not an error.
func LoadSnapshot(store *engine.Store, logger *zap.Logger) {
	if StateCollection == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc stateDoc
	err := StateCollection.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logger.Warn("loading persisted state failed", zap.Error(err))
		}
		return
	}
	if err := store.RestoreBackup(doc.Document); err != nil {
		logger.Warn("persisted state rejected, starting empty", zap.Error(err))
		return
	}
	logger.Info("state restored", zap.Time("saved_at", doc.SavedAt))
}

// ArchiveBackup stores an exported backup document in the archive
// collection (used by the daily job and the manual export endpoint).
func ArchiveBackup(doc models.BackupDocument) error {
	if BackupCollection == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := BackupCollection.InsertOne(ctx, bson.M{
		"created_at": time.Now(),
		"document":   doc,
	})
	return err
}
