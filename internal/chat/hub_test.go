package chat

import (
	"testing"
	"time"

	"stylestore/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func newTestClient(userID int64, buf int) *Client {
	return &Client{
		send:   make(chan Frame, buf),
		userID: userID,
	}
}

func recvFrame(t *testing.T, ch chan Frame) Frame {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func TestHub_PublishToUser_DeliversToRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(7, 8)
	hub.register <- client

	hub.PublishToUser(7, model.Message{ID: 1, SenderUserID: 9, ReceiverUserID: 7, Content: "hello"})

	frame := recvFrame(t, client.send)
	assert.Equal(t, "chat.message", frame.Type)
	assert.Equal(t, "hello", frame.Message.Content)
}

func TestHub_PublishToUser_OtherTopicsUntouched(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := newTestClient(7, 8)
	other := newTestClient(8, 8)
	hub.register <- mine
	hub.register <- other

	hub.PublishToUser(7, model.Message{ID: 1, ReceiverUserID: 7})

	recvFrame(t, mine.send)
	select {
	case f := <-other.send:
		t.Fatalf("unexpected frame for other user: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishToUser_FansOutToAllTabs(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	//同一ユーザーの2接続
	tab1 := newTestClient(7, 8)
	tab2 := newTestClient(7, 8)
	hub.register <- tab1
	hub.register <- tab2

	hub.PublishToUser(7, model.Message{ID: 1, ReceiverUserID: 7})

	assert.Equal(t, "chat.message", recvFrame(t, tab1.send).Type)
	assert.Equal(t, "chat.message", recvFrame(t, tab2.send).Type)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	//バッファを埋めて受信しない = 詰まったクライアント
	slow := newTestClient(7, 1)
	slow.send <- Frame{Type: "chat.message"}
	hub.register <- slow

	probe := newTestClient(8, 8)
	hub.register <- probe

	hub.PublishToUser(7, model.Message{ID: 1, ReceiverUserID: 7})

	//Runは直列なので、probeへの配信が届いた時点でslowは処理済み
	hub.PublishToUser(8, model.Message{ID: 2, ReceiverUserID: 8})
	recvFrame(t, probe.send)

	//dropされるとsendがcloseされる（滞留分を吐き出した後）
	recvFrame(t, slow.send)
	select {
	case _, ok := <-slow.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("slow client was not dropped")
	}
}

func TestHub_UnauthenticatedClientHasNoTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	//connect前はuserID 0で登録される
	anon := newTestClient(0, 8)
	hub.register <- anon

	hub.PublishToUser(0, model.Message{ID: 1})

	select {
	case f := <-anon.send:
		t.Fatalf("unexpected frame before connect: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ReregisterAfterConnectJoinsTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(0, 8)
	hub.register <- client

	//connect成功後の再register
	client.userID = 7
	hub.register <- client

	hub.PublishToUser(7, model.Message{ID: 1, ReceiverUserID: 7})

	assert.Equal(t, "chat.message", recvFrame(t, client.send).Type)
}

func TestHub_StopClosesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(7, 8)
	hub.register <- client

	hub.Stop()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client send channel was not closed")
	}
}
