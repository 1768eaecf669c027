package telegram

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Requester sends Bot API calls that return a raw response. *tgbotapi.BotAPI implements it.
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UpdateParser decodes an update from a webhook request, e.g. (*tgbotapi.BotAPI).HandleUpdate.
type UpdateParser func(r *http.Request) (*tgbotapi.Update, error)

// WebhookPath is the secret path Telegram posts updates to.
func WebhookPath(token string) string {
	return "/webhook/" + shortHash(token)
}

// RegisterWebhook points Telegram at baseURL+path and drops the backlog.
func RegisterWebhook(bot Requester, baseURL, path string) (string, error) {
	public := strings.TrimRight(baseURL, "/") + path
	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return "", errors.Wrap(err, "build webhook config")
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return "", errors.Wrap(err, "set webhook")
	}
	return public, nil
}

// DeleteWebhook removes a previously set webhook; getUpdates is refused while one is active.
func DeleteWebhook(bot Requester) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return errors.Wrap(err, "delete webhook")
	}
	return nil
}

type webhookHandler struct {
	parse   UpdateParser
	updates chan tgbotapi.Update
	log     *zap.Logger
}

// NewWebhookHandler returns the HTTP handler for webhook mode and the channel
// it feeds. The channel is never closed.
func NewWebhookHandler(parse UpdateParser, log *zap.Logger) (http.Handler, <-chan tgbotapi.Update) {
	if log == nil {
		log = zap.NewNop()
	}
	h := &webhookHandler{parse: parse, updates: make(chan tgbotapi.Update, 100), log: log}
	return h, h.updates
}

func (h *webhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	upd, err := h.parse(r)
	if err != nil {
		h.log.Warn("bad webhook request", zap.Error(err))
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}

	select {
	case h.updates <- *upd:
		w.WriteHeader(http.StatusOK)
	case <-r.Context().Done():
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}
}

func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:16]
}
