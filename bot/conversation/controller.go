// Package conversation drives the per-user quiz state machine. The state is
// derived from the session store: no session means idle, a session without a
// face answer is waiting for question one, a session with one is waiting for
// question two. Completing the quiz removes the session.
package conversation

import (
	"context"
	"log/slog"

	"github.com/kaodiag/facebot/bot/message"
	"github.com/kaodiag/facebot/bot/quiz"
	"github.com/kaodiag/facebot/bot/session"
	"github.com/kaodiag/facebot/core/logger"
	"github.com/kaodiag/facebot/core/metrics"
)

// State identifies where a user currently is in the quiz flow.
type State int

const (
	StateNoSession State = iota
	StateAwaitingQ1
	StateAwaitingQ2
)

func (s State) String() string {
	switch s {
	case StateAwaitingQ1:
		return "awaiting_q1"
	case StateAwaitingQ2:
		return "awaiting_q2"
	default:
		return "no_session"
	}
}

// Controller owns session lifecycle transitions and produces the reply for
// each recognized action. Session mutations are committed before the caller
// attempts delivery; a failed reply never rolls them back.
type Controller struct {
	store    session.Store
	promoURL string
}

// New constructs a Controller over the given store. promoURL may be empty.
func New(store session.Store, promoURL string) *Controller {
	return &Controller{store: store, promoURL: promoURL}
}

// StateFor derives the current quiz state of a user from the store.
func (c *Controller) StateFor(userID string) State {
	s, ok := c.store.Get(userID)
	switch {
	case !ok:
		return StateNoSession
	case !s.HasFace:
		return StateAwaitingQ1
	default:
		return StateAwaitingQ2
	}
}

// StartQuiz creates a fresh empty session for the user, overwriting any
// in-progress one, and returns question one.
func (c *Controller) StartQuiz(ctx context.Context, userID string) *message.Message {
	prev := c.StateFor(userID)
	c.store.Put(userID, session.Session{})
	c.syncGauge()

	logger.Debug(ctx, "conversation", "quiz.start",
		slog.String("state", prev.String()),
	)
	return message.QuestionOne()
}

// AnswerFace records the first answer and returns question two. A missing
// session is recovered by starting one with the face already answered.
func (c *Controller) AnswerFace(ctx context.Context, userID string, face quiz.FaceValue) *message.Message {
	s, _ := c.store.Get(userID)
	s.Face = face
	s.HasFace = true
	c.store.Put(userID, s)
	c.syncGauge()

	logger.Debug(ctx, "conversation", "quiz.answer",
		slog.String("face", string(face)),
	)
	return message.QuestionTwo()
}

// AnswerLine records the second answer, classifies the pair, deletes the
// session, and returns the result message. A missing face answer (or a
// missing session entirely) counts as unknown.
func (c *Controller) AnswerLine(ctx context.Context, userID string, line quiz.LineValue) *message.Message {
	s, ok := c.store.Get(userID)
	face := quiz.FaceUnknown
	if ok && s.HasFace {
		face = s.Face
	}

	cat := quiz.Classify(face, line)
	c.store.Remove(userID)
	c.syncGauge()

	logger.Info(ctx, "conversation", "quiz.completed",
		slog.String("face", string(face)),
		slog.String("line", string(line)),
		slog.String("category", cat.Key),
	)
	return message.Result(cat, c.promoURL)
}

// ShowMenu returns the promotional menu. It never touches session state and
// is reachable from any quiz state.
func (c *Controller) ShowMenu(ctx context.Context) *message.Message {
	logger.Debug(ctx, "conversation", "menu.show")
	return message.Menu()
}

func (c *Controller) syncGauge() {
	metrics.ActiveSessions.Set(float64(c.store.Len()))
}
