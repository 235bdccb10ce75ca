package utils

import (
	"time"

	"dartserver/rooms"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func CronCleaner(hub *rooms.Hub, logger *zap.Logger) {
	c := cron.New()

	// 24時間操作がなく接続クライアントもいないルームを削除するジョブ（毎日実行）
	c.AddFunc("@daily", func() {
		logger.Info("放置ルームの掃除を開始")
		removed := hub.ExpireIdle(24*time.Hour, time.Now())
		logger.Info("放置ルームの掃除完了",
			zap.Int("rooms_deleted", removed),
			zap.Int("rooms_remaining", hub.Count()),
		)
	})

	// 念のための追い掃除ジョブ（"分 時 日 月 曜日"）。48時間基準でもう一度回す
	c.AddFunc("0 3 * * *", func() {
		removed := hub.ExpireIdle(48*time.Hour, time.Now())
		if removed > 0 {
			logger.Info("追い掃除でルームを削除", zap.Int("rooms_deleted", removed))
		}
	})

	c.Start()
}
