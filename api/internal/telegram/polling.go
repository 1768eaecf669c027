package telegram

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"whocall-bot/api/internal/metrics"
)

// UpdateFetcher is the long polling part of *tgbotapi.BotAPI.
type UpdateFetcher interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type PollerOptions struct {
	// Timeout is the long polling timeout passed to getUpdates.
	Timeout time.Duration
	// IdleDelay is the pause after an empty batch.
	IdleDelay time.Duration
	// BaseDelay and MaxDelay bound the pause after a failed call.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Logger    *zap.Logger
}

// Poller pulls updates with getUpdates and survives transient API errors.
type Poller struct {
	api  UpdateFetcher
	opts PollerOptions
}

func NewPoller(api UpdateFetcher, opts PollerOptions) *Poller {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.IdleDelay <= 0 {
		opts.IdleDelay = 200 * time.Millisecond
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.MaxDelay < opts.BaseDelay {
		opts.MaxDelay = max(15*time.Second, opts.BaseDelay)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Poller{api: api, opts: opts}
}

// Run starts polling in the background. The returned channel is closed once
// ctx is done.
func (p *Poller) Run(ctx context.Context) <-chan tgbotapi.Update {
	out := make(chan tgbotapi.Update, 100)
	go func() {
		defer close(out)
		p.loop(ctx, out)
	}()
	return out
}

func (p *Poller) loop(ctx context.Context, out chan<- tgbotapi.Update) {
	log := p.opts.Logger
	offset := 0
	for {
		if ctx.Err() != nil {
			log.Info("polling: context cancelled")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = int(p.opts.Timeout / time.Second)
		updates, err := p.api.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), p.opts.BaseDelay), p.opts.MaxDelay)
			metrics.PollingErrorsTotal.Inc()
			log.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			if !sleep(ctx, d) {
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			select {
			case out <- upd:
			case <-ctx.Done():
				return
			}
		}
		if len(updates) == 0 && !sleep(ctx, p.opts.IdleDelay) {
			return
		}
	}
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

// retryDelayFromError picks a pause for a failed getUpdates call: the
// "retry after N" hint of a 429, or a short fixed delay otherwise.
func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}

	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
		return time.Duration(tgErr.RetryAfter) * time.Second
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 от Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return time.Second
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
