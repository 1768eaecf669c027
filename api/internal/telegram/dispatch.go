package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// shardBuffer is the queue length of each worker.
const shardBuffer = 16

type Handler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

type HandlerFunc func(ctx context.Context, upd tgbotapi.Update)

func (f HandlerFunc) HandleUpdate(ctx context.Context, upd tgbotapi.Update) { f(ctx, upd) }

// Dispatcher fans updates out to a fixed set of workers. Updates of one chat
// always land on the same worker, so a chat is served in order while
// different chats are served in parallel.
type Dispatcher struct {
	handler Handler
	workers int
}

func NewDispatcher(h Handler, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{handler: h, workers: workers}
}

// Run consumes updates until the channel is closed or ctx is done, then waits
// for the workers to finish what they already took.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	shards := make([]chan tgbotapi.Update, d.workers)
	var wg sync.WaitGroup
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, shardBuffer)
		wg.Add(1)
		go func(in <-chan tgbotapi.Update) {
			defer wg.Done()
			for upd := range in {
				d.handler.HandleUpdate(ctx, upd)
			}
		}(shards[i])
	}

	defer func() {
		for _, ch := range shards {
			close(ch)
		}
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			select {
			case shards[d.shard(upd)] <- upd:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (d *Dispatcher) shard(upd tgbotapi.Update) int {
	chat := upd.FromChat()
	if chat == nil {
		return 0
	}
	return int(uint64(chat.ID) % uint64(d.workers))
}
