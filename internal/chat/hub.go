package chat

import (
	"stylestore/internal/domain/model"
)

type delivery struct {
	userID int64
	frame  Frame
}

// Hub はユーザーIDごとのトピックに接続中クライアントを束ねる。
// clients/topicsはRunのgoroutineだけが触る（チャネル経由で直列化）。
type Hub struct {
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	// userID -> 接続中クライアント（同一ユーザーの複数タブを許す）
	topics  map[int64]map[*Client]bool
	clients map[*Client]bool

	quit chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client, 256),
		deliver:    make(chan delivery, 256),
		topics:     make(map[int64]map[*Client]bool),
		clients:    make(map[*Client]bool),
		quit:       make(chan struct{}),
	}
}

// PublishToUser は保存済みメッセージを宛先ユーザーの全接続へ配る。
// usecase.MessagePublisherの実装。接続が無ければ何もしない。
func (h *Hub) PublishToUser(userID int64, m model.Message) {
	select {
	case h.deliver <- delivery{userID: userID, frame: chatMessageFrame(m)}:
	default:
		// Hubが詰まっているときは配信を諦める（DBには保存済み）
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if client.userID > 0 {
				if h.topics[client.userID] == nil {
					h.topics[client.userID] = make(map[*Client]bool)
				}
				h.topics[client.userID][client] = true
			}

		case client := <-h.unregister:
			h.dropClient(client)

		case d := <-h.deliver:
			for client := range h.topics[d.userID] {
				select {
				case client.send <- d.frame:
				default:
					// 詰まったクライアントは切る
					h.dropClient(client)
				}
			}

		case <-h.quit:
			for client := range h.clients {
				h.dropClient(client)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) dropClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)

	if client.userID > 0 {
		if topic, ok := h.topics[client.userID]; ok {
			delete(topic, client)
			if len(topic) == 0 {
				delete(h.topics, client.userID)
			}
		}
	}
	client.closeSend()
}
