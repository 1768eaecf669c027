package telegram_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"whocall-bot/api/internal/telegram"
)

type batch struct {
	updates []tgbotapi.Update
	err     error
}

// scriptedAPI replays batches, then returns empty results.
type scriptedAPI struct {
	mu      sync.Mutex
	batches []batch
	offsets []int
}

func (s *scriptedAPI) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets = append(s.offsets, cfg.Offset)
	if len(s.batches) == 0 {
		return nil, nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b.updates, b.err
}

func (s *scriptedAPI) seenOffsets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.offsets...)
}

func TestPoller_DeliversAndAdvancesOffset(t *testing.T) {
	api := &scriptedAPI{batches: []batch{
		{updates: []tgbotapi.Update{{UpdateID: 7}, {UpdateID: 8}}},
		{err: errors.New("Bad Gateway")},
		{updates: []tgbotapi.Update{{UpdateID: 9}}},
	}}
	p := telegram.NewPoller(api, telegram.PollerOptions{
		IdleDelay: time.Millisecond,
		BaseDelay: time.Millisecond,
		MaxDelay:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := p.Run(ctx)

	var got []int
	for len(got) < 3 {
		select {
		case upd := <-out:
			got = append(got, upd.UpdateID)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	require.Equal(t, []int{7, 8, 9}, got)

	offsets := api.seenOffsets()
	require.Equal(t, []int{0, 9, 9}, offsets[:3])

	cancel()
	for range out {
	}
}

func TestPoller_ClosesChannelOnCancel(t *testing.T) {
	p := telegram.NewPoller(&scriptedAPI{}, telegram.PollerOptions{IdleDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	out := p.Run(ctx)
	cancel()

	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel was not closed")
	}
}
