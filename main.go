package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"dartserver/database" //Redisと設定ファイルの初期化
	"dartserver/handlers" //盤面操作のHTTPリクエストの処理
	"dartserver/live"     //WebSocketによるライブ盤面配信
	"dartserver/rooms"    //ルームと盤面のインメモリ管理
	"dartserver/utils"    //ロガーの初期化とCronジョブ(放置ルームの定期クリーンナップ)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// Websocket接続で用いるアップグレーダを初期化
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// 設定ファイルの読み込み
	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
	}

	// 非同期でRedisの初期化。失敗してもセッション復元なしで続行する
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Warn("Redis unavailable, session restore disabled", zap.Error(err))
			rdb = nil
		}
		done <- true
	}()

	// 初期化が完了するのを待つ
	<-done

	hub := rooms.NewHub(logger)

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(hub, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	router.POST("/create", func(c *gin.Context) {
		handlers.RoomCreate(c, hub, config.DefaultBoardSize, logger)
	})
	router.DELETE("/room/:id", func(c *gin.Context) {
		handlers.RoomDelete(c, hub, logger)
	})
	router.GET("/room/:id/state", func(c *gin.Context) {
		handlers.RoomState(c, hub, logger)
	})
	router.GET("/room/:id/frame", func(c *gin.Context) {
		handlers.RenderFrame(c, hub, logger)
	})
	router.POST("/room/:id/throw", func(c *gin.Context) {
		handlers.RegisterThrow(c, hub, logger)
	})
	router.POST("/room/:id/markers", func(c *gin.Context) {
		handlers.ShowMarkers(c, hub, logger)
	})
	router.DELETE("/room/:id/markers", func(c *gin.Context) {
		handlers.ClearMarkers(c, hub, logger)
	})
	router.POST("/room/:id/zoom", func(c *gin.Context) {
		handlers.ZoomBoard(c, hub, logger)
	})
	router.POST("/room/:id/zoom/bull", func(c *gin.Context) {
		handlers.ZoomToBull(c, hub, logger)
	})
	router.POST("/room/:id/zoom/reset", func(c *gin.Context) {
		handlers.ResetZoom(c, hub, logger)
	})
	router.POST("/room/:id/resize", func(c *gin.Context) {
		handlers.ResizeBoard(c, hub, logger)
	})
	router.POST("/room/:id/decider/start", func(c *gin.Context) {
		handlers.DeciderStart(c, hub, logger)
	})
	router.POST("/room/:id/decider/current", func(c *gin.Context) {
		handlers.DeciderSetCurrent(c, hub, logger)
	})
	router.POST("/room/:id/decider/marker", func(c *gin.Context) {
		handlers.DeciderAddMarker(c, hub, logger)
	})
	router.POST("/room/:id/decider/pause", func(c *gin.Context) {
		handlers.DeciderTogglePause(c, hub, logger)
	})
	router.POST("/room/:id/decider/end", func(c *gin.Context) {
		handlers.DeciderEnd(c, hub, logger)
	})
	// 旧クライアント互換のキャンセル用ルート。動作は終了と同じ
	router.POST("/room/:id/decider/cancel", func(c *gin.Context) {
		handlers.DeciderEnd(c, hub, logger)
	})
	router.GET("/ws", func(c *gin.Context) {
		live.HandleConnections(c.Request.Context(), c.Writer, c.Request, rdb, logger, hub, upgrader, config.DefaultBoardSize)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run(config.ListenAddr)

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
