package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/kaodiag/facebot/bot/conversation"
	"github.com/kaodiag/facebot/bot/message"
	"github.com/kaodiag/facebot/core/logger"
	"github.com/kaodiag/facebot/core/metrics"
)

// ReplyGateway delivers a reply for a webhook event. Implementations report
// delivery failures through their own logging; the dispatcher treats the
// reply as fire-and-forget once the session mutation is committed.
type ReplyGateway interface {
	Reply(ctx context.Context, replyToken string, msg *message.Message) error
}

// Dispatcher routes parsed webhook events to the conversation controller and
// sends at most one reply per event through the gateway.
type Dispatcher struct {
	ctrl    *conversation.Controller
	gateway ReplyGateway
	trigger string
}

// NewDispatcher wires a dispatcher. trigger is matched against message text
// by exact equality after trimming surrounding whitespace.
func NewDispatcher(ctrl *conversation.Controller, gateway ReplyGateway, trigger string) *Dispatcher {
	return &Dispatcher{
		ctrl:    ctrl,
		gateway: gateway,
		trigger: strings.TrimSpace(trigger),
	}
}

// HandleEvents processes every event of one webhook delivery in order.
func (d *Dispatcher) HandleEvents(ctx context.Context, events []webhook.EventInterface) {
	for _, ev := range events {
		d.HandleEvent(ctx, ev)
	}
}

// HandleEvent classifies one event and performs the resulting action.
// Unrecognized events and payloads are dropped without a reply.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev webhook.EventInterface) {
	start := time.Now()

	switch e := ev.(type) {
	case webhook.MessageEvent:
		text, ok := textOf(e.Message)
		if !ok {
			d.skip(ctx, "message.non_text")
			return
		}
		userID := userIDOf(e.Source)
		ctx = logger.WithEventMeta(ctx, e.WebhookEventId, userID)
		if strings.TrimSpace(text) != d.trigger || userID == "" {
			d.skip(ctx, "message.unrecognized")
			return
		}
		ctx = logger.WithHandler(ctx, "start_quiz")
		reply := d.ctrl.StartQuiz(ctx, userID)
		d.deliver(ctx, "start_quiz", e.ReplyToken, reply, start)

	case webhook.PostbackEvent:
		if e.Postback == nil {
			d.skip(ctx, "postback.empty")
			return
		}
		userID := userIDOf(e.Source)
		ctx = logger.WithEventMeta(ctx, e.WebhookEventId, userID)
		action := DecodePostback(e.Postback.Data)

		switch action.Kind {
		case ActionShowMenu:
			ctx = logger.WithHandler(ctx, "show_menu")
			d.deliver(ctx, "show_menu", e.ReplyToken, d.ctrl.ShowMenu(ctx), start)
		case ActionAnswerFace:
			if userID == "" {
				d.skip(ctx, "postback.no_user")
				return
			}
			ctx = logger.WithHandler(ctx, "answer_face")
			reply := d.ctrl.AnswerFace(ctx, userID, action.Face)
			d.deliver(ctx, "answer_face", e.ReplyToken, reply, start)
		case ActionAnswerLine:
			if userID == "" {
				d.skip(ctx, "postback.no_user")
				return
			}
			ctx = logger.WithHandler(ctx, "answer_line")
			reply := d.ctrl.AnswerLine(ctx, userID, action.Line)
			d.deliver(ctx, "answer_line", e.ReplyToken, reply, start)
		default:
			d.skip(ctx, "postback.unrecognized")
		}

	default:
		d.skip(ctx, "event.foreign")
	}
}

func (d *Dispatcher) deliver(ctx context.Context, kind, replyToken string, msg *message.Message, start time.Time) {
	err := d.gateway.Reply(ctx, replyToken, msg)

	metrics.WebhookEvents.WithLabelValues(kind, logger.Status(err)).Inc()
	metrics.EventDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("action", kind),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	logger.Info(ctx, "dispatch", "event.handled", attrs...)
}

func (d *Dispatcher) skip(ctx context.Context, reason string) {
	metrics.WebhookEvents.WithLabelValues("ignored", "skip").Inc()
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "dispatch", "event.skipped",
			slog.String("status", "skip"),
			slog.String("cause", reason),
		)
	}
}

func userIDOf(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case *webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}

func textOf(content webhook.MessageContentInterface) (string, bool) {
	switch m := content.(type) {
	case webhook.TextMessageContent:
		return m.Text, true
	case *webhook.TextMessageContent:
		return m.Text, true
	default:
		return "", false
	}
}
