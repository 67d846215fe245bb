package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"heroes-marathon-bot/internal/domain"
)

type orderRecorder struct {
	mu       sync.Mutex
	seen     map[int64][]string
	inFlight map[int64]int
	overlap  bool

	active    atomic.Int32
	maxActive atomic.Int32
}

func newOrderRecorder() *orderRecorder {
	return &orderRecorder{seen: make(map[int64][]string), inFlight: make(map[int64]int)}
}

func (r *orderRecorder) Handle(_ context.Context, ev domain.Event) error {
	n := r.active.Add(1)
	for {
		peak := r.maxActive.Load()
		if n <= peak || r.maxActive.CompareAndSwap(peak, n) {
			break
		}
	}
	defer r.active.Add(-1)

	r.mu.Lock()
	r.inFlight[ev.ChatID]++
	if r.inFlight[ev.ChatID] > 1 {
		r.overlap = true
	}
	r.mu.Unlock()

	time.Sleep(time.Millisecond)

	r.mu.Lock()
	r.inFlight[ev.ChatID]--
	r.seen[ev.ChatID] = append(r.seen[ev.ChatID], ev.Text)
	r.mu.Unlock()

	if ev.Text == "fail" {
		return errors.New("boom")
	}
	return nil
}

func TestDispatcherKeepsPerChatOrder(t *testing.T) {
	rec := newOrderRecorder()
	d := NewDispatcher(rec, 4, nil)

	inputs := []string{"a", "b", "fail", "c", "d"}
	for _, text := range inputs {
		for chat := int64(1); chat <= 5; chat++ {
			d.Submit(context.Background(), domain.Event{ChatID: chat, Kind: domain.EventText, Text: text})
		}
	}
	d.Wait()

	require.False(t, rec.overlap, "events of one chat must not run concurrently")
	for chat := int64(1); chat <= 5; chat++ {
		require.Equal(t, inputs, rec.seen[chat], "chat %d", chat)
	}
	require.LessOrEqual(t, rec.maxActive.Load(), int32(4))
}

func TestDispatcherSurvivesCancelledContext(t *testing.T) {
	rec := newOrderRecorder()
	d := NewDispatcher(rec, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Submit(ctx, domain.Event{ChatID: 9, Kind: domain.EventText, Text: "late"})
	d.Wait()

	require.Equal(t, []string{"late"}, rec.seen[9])
}
