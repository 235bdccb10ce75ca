package models

// Config 構造体はサーバーの設定情報を保持します。
type Config struct {
	ListenAddr       string `json:"listen_addr"`        // 例 ":8080"
	AllowedOrigin    string `json:"allowed_origin"`     // CORSで許可するオリジン
	DefaultBoardSize int    `json:"default_board_size"` // 新規ルームの盤面サイズ(px)
}

// DefaultConfig は設定ファイルが無い場合のフォールバック値です。
func DefaultConfig() Config {
	return Config{
		ListenAddr:       ":8080",
		AllowedOrigin:    "http://localhost:8080",
		DefaultBoardSize: 640,
	}
}
