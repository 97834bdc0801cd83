package telegram

import (
	"sync"

	"laporan-harian/api/internal/report"
	"laporan-harian/api/internal/session"
)

// step is the form field a chat is expected to answer next.
type step int

const (
	stepIdle step = iota
	stepActivity
	stepLearning
	stepObstacle
)

type chat struct {
	mu    sync.Mutex
	step  step
	input report.ReportInput
	sess  *session.Session
}

// chats maps a chat id to its form and session.
type chats struct {
	m sync.Map // chatID -> *chat
}

func (c *chats) get(chatID int64, newSession func() *session.Session) *chat {
	if v, ok := c.m.Load(chatID); ok {
		return v.(*chat)
	}
	v, _ := c.m.LoadOrStore(chatID, &chat{sess: newSession()})
	return v.(*chat)
}

// begin clears the form and waits for the activity note.
func (ch *chat) begin() {
	ch.mu.Lock()
	ch.step = stepActivity
	ch.input = report.ReportInput{}
	ch.mu.Unlock()
	ch.sess.Reset()
}

func (ch *chat) clear() {
	ch.mu.Lock()
	ch.step = stepIdle
	ch.input = report.ReportInput{}
	ch.mu.Unlock()
	ch.sess.Reset()
}

// answer stores text for the current step and returns the next step. It
// returns ok=false when no field is pending.
func (ch *chat) answer(text string) (next step, in report.ReportInput, ok bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	switch ch.step {
	case stepActivity:
		ch.input.Activity = text
		ch.step = stepLearning
	case stepLearning:
		ch.input.Learning = text
		ch.step = stepObstacle
	case stepObstacle:
		ch.input.Obstacle = text
		ch.step = stepIdle
	default:
		return stepIdle, ch.input, false
	}
	return ch.step, ch.input, true
}

func (ch *chat) current() step {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.step
}

// restore puts a rejected submission back so the next obstacle reply sends it
// again. It does nothing once the user has started another form.
func (ch *chat) restore(in report.ReportInput) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.step != stepIdle {
		return
	}
	ch.input = in
	ch.step = stepObstacle
}
