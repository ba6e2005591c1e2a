package network

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muneebk98/Maze-Adventures/pkg/api"
)

func TestBroadcaster_RegisterAndBroadcast(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.Broadcast(api.ServerMessage{Type: api.MsgEvent, Tick: 1})

	assert.Equal(t, uint64(1), (<-a).Tick)
	assert.Equal(t, uint64(1), (<-c).Tick)
	assert.Equal(t, 2, b.SubscriberCount())
}

func TestBroadcaster_SendToAndUnregister(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")

	b.SendTo("a", api.ServerMessage{Type: api.MsgSnapshot})
	b.SendTo("missing", api.ServerMessage{Type: api.MsgSnapshot})
	assert.Equal(t, api.MsgSnapshot, (<-a).Type)

	b.Unregister("a")
	_, open := <-a
	assert.False(t, open)
	assert.False(t, b.HasSubscriber("a"))
}

func TestBroadcaster_NeverBlocks(t *testing.T) {
	b := NewBroadcaster()
	b.bufferSize = 1
	b.Register("slow")

	for i := 0; i < 5; i++ {
		b.Broadcast(api.ServerMessage{Tick: uint64(i)})
	}
	assert.Equal(t, 4, b.Dropped("slow"))
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("a")
	b.Register("a")

	_, open := <-old
	assert.False(t, open)
	assert.Equal(t, 1, b.SubscriberCount())
}
