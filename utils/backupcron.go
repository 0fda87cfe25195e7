package utils

import (
	"go.uber.org/zap"

	"backend/config"
)

// RunDailyBackup archives a full backup document. Scheduled from main via
// gocron; the same snapshot logic backs the manual export endpoint, this
// job just makes sure one copy exists per day even if nobody exports.
func RunDailyBackup(logger *zap.Logger) {
	if config.Store == nil {
		return
	}
	doc := config.Store.ExportBackup()
	if err := config.ArchiveBackup(doc); err != nil {
		logger.Error("daily backup failed", zap.Error(err))
		return
	}
	logger.Info("daily backup archived",
		zap.String("version", doc.Version),
		zap.Int("batches", len(doc.Batches)),
		zap.Int("sales", len(doc.Sales)),
	)
}
