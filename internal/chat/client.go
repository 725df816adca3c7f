package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"stylestore/internal/domain/model"
	"stylestore/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORSはHTTP側で制御するのでここでは許可する
	CheckOrigin: func(r *http.Request) bool { return true },
}

// クライアントと交換するフレーム。
// 受信: connect / chat.send、送信: chat.message / error
type Frame struct {
	Type           string         `json:"type"`
	Token          string         `json:"token,omitempty"`
	ReceiverUserID int64          `json:"receiver_user_id,omitempty"`
	Content        string         `json:"content,omitempty"`
	Message        *model.Message `json:"message,omitempty"`
	Error          string         `json:"error,omitempty"`
}

func chatMessageFrame(m model.Message) Frame {
	msg := m
	return Frame{Type: "chat.message", Message: &msg}
}

func errorFrame(msg string) Frame {
	return Frame{Type: "error", Error: msg}
}

// JWTの検証だけを切り出した約束。middlewareの実装を使う。
type TokenVerifier interface {
	Verify(token string) (userID int64, role string, err error)
}

type MessageSender interface {
	SendMessage(ctx context.Context, senderID int64, in usecase.SendMessageInput) (model.Message, error)
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan Frame
	verifier TokenVerifier
	sender   MessageSender

	// 接続ごとのID（ログ追跡用）
	sessionID string

	// connect成功まで0
	userID int64

	// sendのcloseとenqueueの競合を防ぐ
	mu     sync.Mutex
	closed bool
}

// ServeWS はHTTP接続をwebsocketへupgradeしてポンプを起動する。
// 認証はconnectフレームで行う。未認証でも接続自体は維持する。
func ServeWS(hub *Hub, verifier TokenVerifier, sender MessageSender, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat: upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan Frame, 256),
		verifier:  verifier,
		sender:    sender,
		sessionID: uuid.NewString(),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		select {
		case c.hub.unregister <- c:
		default:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("chat: session %s read error: %v", c.sessionID, err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.enqueue(errorFrame("invalid frame"))
			continue
		}

		switch frame.Type {
		case "connect":
			c.handleConnect(frame)
		case "chat.send":
			c.handleChatSend(frame)
		default:
			c.enqueue(errorFrame("unknown frame type"))
		}
	}
}

// handleConnect はトークン検証に成功したら自分のトピックに入る。
// 失敗してもエラーフレームは返さず、ログを残して黙って無視する
// （以後のchat.sendが捨てられるだけで、接続自体は維持する）。
func (c *Client) handleConnect(frame Frame) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(frame.Token), "Bearer"))
	if token == "" {
		log.Printf("chat: session %s connect without token", c.sessionID)
		return
	}

	userID, _, err := c.verifier.Verify(token)
	if err != nil {
		log.Printf("chat: session %s connect with invalid token: %v", c.sessionID, err)
		return
	}

	c.userID = userID
	//トピック入りは再registerで行う
	c.hub.register <- c
}

func (c *Client) handleChatSend(frame Frame) {
	//未認証のsendは捨てるだけ（接続は維持する）
	if c.userID <= 0 {
		log.Printf("chat: session %s chat.send before connect", c.sessionID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.sender.SendMessage(ctx, c.userID, usecase.SendMessageInput{
		ReceiverUserID: frame.ReceiverUserID,
		Content:        frame.Content,
	})
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok {
			c.enqueue(errorFrame(he.Message))
		} else {
			c.enqueue(errorFrame("failed to send message"))
		}
	}
	//配信はusecase側がHub経由で行う（送信者トピックにも届く）
}

// enqueue はバッファ満杯なら捨てる。close済みチャネルへは送らない。
func (c *Client) enqueue(frame Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// closeSend はHubから切り離されたときに呼ばれる。2回目以降は何もしない。
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
