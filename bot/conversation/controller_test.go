package conversation

import (
	"context"
	"testing"

	"github.com/kaodiag/facebot/bot/message"
	"github.com/kaodiag/facebot/bot/quiz"
	"github.com/kaodiag/facebot/bot/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() (*Controller, session.Store) {
	store := session.NewMemoryStore()
	return New(store, ""), store
}

func TestFullQuizFlow(t *testing.T) {
	ctx := context.Background()
	ctrl, store := newController()

	assert.Equal(t, StateNoSession, ctrl.StateFor("U1"))

	q1 := ctrl.StartQuiz(ctx, "U1")
	require.Len(t, q1.Choices, 3)
	assert.Equal(t, "face=child", q1.Choices[0].Data)
	assert.Equal(t, StateAwaitingQ1, ctrl.StateFor("U1"))

	q2 := ctrl.AnswerFace(ctx, "U1", quiz.FaceChild)
	require.Len(t, q2.Choices, 3)
	assert.Equal(t, "line=curve", q2.Choices[0].Data)
	assert.Equal(t, StateAwaitingQ2, ctrl.StateFor("U1"))

	result := ctrl.AnswerLine(ctx, "U1", quiz.LineStraight)
	assert.Contains(t, result.Text, quiz.CategoryClear.Name)
	assert.Contains(t, result.Text, quiz.CategoryClear.Keyword)

	// completing the quiz destroys the session
	assert.Equal(t, StateNoSession, ctrl.StateFor("U1"))
	assert.Equal(t, 0, store.Len())
}

func TestTriggerRestartsQuiz(t *testing.T) {
	ctx := context.Background()
	ctrl, store := newController()

	ctrl.StartQuiz(ctx, "U1")
	ctrl.AnswerFace(ctx, "U1", quiz.FaceAdult)
	assert.Equal(t, StateAwaitingQ2, ctrl.StateFor("U1"))

	// trigger mid-quiz silently restarts with an empty session
	ctrl.StartQuiz(ctx, "U1")
	assert.Equal(t, StateAwaitingQ1, ctrl.StateFor("U1"))
	s, ok := store.Get("U1")
	require.True(t, ok)
	assert.False(t, s.HasFace)

	// and doing it twice in a row accumulates nothing
	ctrl.StartQuiz(ctx, "U1")
	assert.Equal(t, StateAwaitingQ1, ctrl.StateFor("U1"))
	assert.Equal(t, 1, store.Len())
}

func TestLineWithoutSessionDefaultsToNeutral(t *testing.T) {
	ctx := context.Background()
	ctrl, store := newController()

	result := ctrl.AnswerLine(ctx, "U2", quiz.LineCurve)
	assert.Contains(t, result.Text, quiz.CategoryNatural.Name)
	assert.Equal(t, 0, store.Len())
}

func TestLineBeforeFaceDefaultsToNeutral(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController()

	ctrl.StartQuiz(ctx, "U1")
	result := ctrl.AnswerLine(ctx, "U1", quiz.LineStraight)
	assert.Contains(t, result.Text, quiz.CategoryNatural.Name)
	assert.Equal(t, StateNoSession, ctrl.StateFor("U1"))
}

func TestMenuNeverMutatesSessions(t *testing.T) {
	ctx := context.Background()
	ctrl, store := newController()

	// from no session
	menu := ctrl.ShowMenu(ctx)
	assert.NotEmpty(t, menu.Text)
	assert.Equal(t, 0, store.Len())

	// from awaiting q1
	ctrl.StartQuiz(ctx, "U1")
	ctrl.ShowMenu(ctx)
	assert.Equal(t, StateAwaitingQ1, ctrl.StateFor("U1"))

	// from awaiting q2
	ctrl.AnswerFace(ctx, "U1", quiz.FaceChild)
	ctrl.ShowMenu(ctx)
	assert.Equal(t, StateAwaitingQ2, ctrl.StateFor("U1"))
	s, ok := store.Get("U1")
	require.True(t, ok)
	assert.Equal(t, quiz.FaceChild, s.Face)
}

func TestUsersAreIndependent(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController()

	ctrl.StartQuiz(ctx, "A")
	ctrl.StartQuiz(ctx, "B")
	ctrl.AnswerFace(ctx, "A", quiz.FaceChild)
	ctrl.AnswerFace(ctx, "B", quiz.FaceAdult)

	resultB := ctrl.AnswerLine(ctx, "B", quiz.LineStraight)
	assert.Contains(t, resultB.Text, quiz.CategoryCool.Name)

	// B finishing must not have touched A
	assert.Equal(t, StateAwaitingQ2, ctrl.StateFor("A"))
	resultA := ctrl.AnswerLine(ctx, "A", quiz.LineCurve)
	assert.Contains(t, resultA.Text, quiz.CategoryCute.Name)
}

func TestResultCarriesPromoLinkWhenConfigured(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	ctrl := New(store, "https://example.com/reserve")

	ctrl.StartQuiz(ctx, "U1")
	ctrl.AnswerFace(ctx, "U1", quiz.FaceChild)
	result := ctrl.AnswerLine(ctx, "U1", quiz.LineCurve)

	require.Len(t, result.Choices, 2)
	assert.Equal(t, message.ChoiceURI, result.Choices[1].Kind)
}
