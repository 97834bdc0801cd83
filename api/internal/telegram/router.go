package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/session"
)

// Sender is the part of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router walks each chat through the three-question form and posts the report.
type Router struct {
	Bot      Sender
	Reporter session.Reporter
	Timeout  time.Duration
	Log      logrus.FieldLogger

	chats    chats
	inflight sync.WaitGroup
}

// HandleUpdate applies one update. It returns before a started report is
// delivered; use Wait to block on those.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, *upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.handleCommand(upd.Message)
		return
	}
	if upd.Message.Text != "" {
		r.handleText(ctx, upd.Message.Chat.ID, upd.Message.Text)
	}
}

func (r *Router) handleCommand(m *tgbotapi.Message) {
	cid := m.Chat.ID
	switch m.Command() {
	case "start", "baru":
		r.chat(cid).begin()
		r.send(cid, msgIntro)
		r.send(cid, msgAskActivity)
	case "reset":
		r.chat(cid).clear()
		r.send(cid, msgReset)
	case "help":
		r.send(cid, msgHelp)
	default:
		r.send(cid, msgUnknown)
	}
}

func (r *Router) handleText(ctx context.Context, cid int64, text string) {
	ch := r.chat(cid)
	if ch.current() == stepIdle {
		r.send(cid, msgIdle)
		return
	}
	if strings.TrimSpace(text) == "" {
		r.send(cid, msgBlank)
		return
	}

	next, in, ok := ch.answer(text)
	if !ok {
		r.send(cid, msgIdle)
		return
	}
	switch next {
	case stepLearning:
		r.send(cid, msgAskLearning)
	case stepObstacle:
		r.send(cid, msgAskObstacle)
	case stepIdle:
		r.send(cid, msgLoading)
		r.generate(ctx, cid, func(ctx context.Context) (session.State, error) {
			st, err := ch.sess.Submit(ctx, in)
			if errors.Is(err, session.ErrBusy) {
				ch.restore(in)
			}
			return st, err
		}, msgBusyResend)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb tgbotapi.CallbackQuery) {
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	cid := cb.Message.Chat.ID

	switch cb.Data {
	case callbackRetry:
		edit := tgbotapi.NewEditMessageReplyMarkup(cid, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		})
		_, _ = r.Bot.Send(edit)

		ch := r.chat(cid)
		if ch.sess.State().Status != report.StatusError {
			r.send(cid, msgNoRetry)
			return
		}
		r.send(cid, msgLoading)
		r.generate(ctx, cid, ch.sess.Retry, msgBusy)
	}
}

// generate runs one session call off the update path, so other chats and
// commands such as /reset are read while the model is writing. Wait blocks
// until every call started here has been delivered.
func (r *Router) generate(ctx context.Context, cid int64, call func(context.Context) (session.State, error), busyMsg string) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		ctx, cancel := r.withTimeout(ctx)
		defer cancel()
		st, err := call(ctx)
		r.deliver(cid, st, err, busyMsg)
	}()
}

// Wait blocks until all generations have been delivered.
func (r *Router) Wait() { r.inflight.Wait() }

// deliver renders the settled session state.
func (r *Router) deliver(cid int64, st session.State, err error, busyMsg string) {
	switch {
	case errors.Is(err, session.ErrBusy):
		r.send(cid, busyMsg)
	case errors.Is(err, session.ErrNothingToRetry):
		r.send(cid, msgNoRetry)
	case errors.Is(err, session.ErrStale):
		// reset while generating; the user already started over
		r.log().WithField("chat_id", cid).Debug("stale report dropped")
	case st.Status == report.StatusSuccess && st.Result != nil:
		r.send(cid, msgDone)
		for _, s := range st.Result.Sections() {
			for _, part := range sectionTexts(s) {
				r.send(cid, part)
			}
		}
		r.send(cid, session.ReviewNotice)
	case st.Status == report.StatusError:
		r.log().WithError(err).WithFields(logrus.Fields{"chat_id": cid, "kind": st.Kind}).Warn("report failed")
		msg := tgbotapi.NewMessage(cid, st.Message)
		msg.ReplyMarkup = makeRetryKeyboard()
		if _, sendErr := r.Bot.Send(msg); sendErr != nil {
			r.log().WithError(sendErr).WithField("chat_id", cid).Warn("telegram send failed")
		}
	case err != nil:
		r.log().WithError(err).WithField("chat_id", cid).Warn("report not delivered")
	}
}

func (r *Router) chat(cid int64) *chat {
	return r.chats.get(cid, func() *session.Session { return session.New(r.Reporter) })
}

func (r *Router) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log().WithError(err).WithField("chat_id", chatID).Warn("telegram send failed")
	}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (r *Router) log() logrus.FieldLogger {
	if r.Log == nil {
		return discard
	}
	return r.Log
}
