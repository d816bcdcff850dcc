package preview

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}

func TestNotifier_BroadcastKeepsNewest(t *testing.T) {
	n := NewNotifier()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	n.Broadcast(1)
	n.Broadcast(2)
	n.Broadcast(3)

	select {
	case gen := <-ch:
		assert.Equal(t, uint64(3), gen)
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	select {
	case gen := <-ch:
		t.Fatalf("unexpected extra generation %d", gen)
	default:
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := NewNotifier()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(uint64(i))
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
