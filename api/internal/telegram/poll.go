package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// UpdateSource is the long-polling side of *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

// retryDelayFromError picks a pause after a failed getUpdates call. Bot API
// errors carry retry_after; other errors fall back to their text.
func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	if n := apiRetryAfter(err); n > 0 {
		return time.Duration(n) * time.Second
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
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
	return 1 * time.Second
}

func apiRetryAfter(err error) int {
	var pe *tgbotapi.Error
	if errors.As(err, &pe) && pe != nil {
		return pe.RetryAfter
	}
	var ve tgbotapi.Error
	if errors.As(err, &ve) {
		return ve.RetryAfter
	}
	return 0
}

// RunPolling long-polls until ctx is done. Errors never stop the loop.
func RunPolling(ctx context.Context, src UpdateSource, handle func(tgbotapi.Update), log logrus.FieldLogger) {
	const (
		baseDelay = 1 * time.Second
		maxDelay  = 15 * time.Second
	)
	offset := 0

	for {
		if ctx.Err() != nil {
			log.Info("polling stopped")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := src.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.WithError(err).WithField("retry_in", d).Warn("polling error")
			if !sleep(ctx, d) {
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 && !sleep(ctx, 200*time.Millisecond) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// WebhookPath is the secret path the bot listens on for a given token.
func WebhookPath(token string) string {
	return "/webhook/" + shortHash(token)
}

// RegisterWebhook points Telegram at baseURL plus the token path.
func RegisterWebhook(bot Sender, token, baseURL string) (string, error) {
	public := strings.TrimRight(baseURL, "/") + WebhookPath(token)
	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return "", err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return "", err
	}
	return public, nil
}

// WebhookHandler decodes each pushed update and hands it to handle.
func WebhookHandler(handle func(tgbotapi.Update)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var upd tgbotapi.Update
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&upd); err != nil {
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		handle(upd)
		w.WriteHeader(http.StatusOK)
	})
}

// shortHash is FNV-1a over the token, rendered as 16 hex digits.
func shortHash(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
