package models

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Websocketクライアントを定義
type Client struct {
	Conn     *websocket.Conn
	UserID   uint // セッション復元で引き継がれる識別子
	RoomID   uint
	NickName string

	writeMu sync.Mutex // gorilla/websocketは同時書き込み不可
}

// ErrNoConnection は接続が確立していないクライアントへの送信で返されます。
var ErrNoConnection = errors.New("models: websocket connection is not established")

// SendJSON はクライアントへJSONメッセージを1件送ります。
// ブロードキャストとPing送信が別ゴルーチンから重なるため、書き込みは直列化する。
func (c *Client) SendJSON(v interface{}) error {
	if c.Conn == nil {
		return ErrNoConnection
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, payload)
}

// SendControl はPingなどの制御メッセージを送ります。
func (c *Client) SendControl(messageType int, data []byte) error {
	if c.Conn == nil {
		return ErrNoConnection
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}
