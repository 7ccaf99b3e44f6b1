// Package line hosts the provider-facing edges of the bot: the inbound
// webhook server and the outbound reply gateway over the LINE Messaging API.
package line

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/kaodiag/facebot/bot/message"
	"github.com/kaodiag/facebot/core/line/sender"
	"github.com/kaodiag/facebot/core/logger"
	"github.com/kaodiag/facebot/core/metrics"
)

// Gateway delivers reply messages through the LINE Messaging API. Replies
// are enqueued on the async sender; when the queue is saturated the gateway
// falls back to a synchronous send so no reply is silently dropped.
type Gateway struct {
	api        *messaging_api.MessagingApiAPI
	dispatcher *sender.Dispatcher
}

// NewGateway builds a Gateway over the Messaging API client.
func NewGateway(channelToken string, dispatcher *sender.Dispatcher) (*Gateway, error) {
	api, err := messaging_api.NewMessagingApiAPI(
		channelToken,
		messaging_api.WithHTTPClient(BuildHTTPClient()),
	)
	if err != nil {
		return nil, fmt.Errorf("line gateway: client init failed: %w", err)
	}
	return &Gateway{api: api, dispatcher: dispatcher}, nil
}

// Reply sends one message for the given reply token. Delivery is
// fire-and-forget: failures are logged and counted, never retried beyond
// the sender's own budget, and never reported back to the conversation.
func (g *Gateway) Reply(ctx context.Context, replyToken string, msg *message.Message) error {
	if msg == nil {
		return nil
	}
	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []messaging_api.MessageInterface{ToSDKMessage(msg)},
	}

	run := func() error {
		if _, err := g.api.ReplyMessage(req); err != nil {
			metrics.APIFailures.WithLabelValues("reply").Inc()
			return err
		}
		metrics.RepliesSent.WithLabelValues(replyType(msg)).Inc()
		return nil
	}

	if g.dispatcher == nil {
		return run()
	}
	if err := g.dispatcher.Enqueue(ctx, "reply", "reply", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "line", "queue.fallback",
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

func replyType(msg *message.Message) string {
	if len(msg.Choices) > 0 {
		return "quick_reply"
	}
	return "text"
}

// ToSDKMessage converts a conversational turn into its Messaging API shape,
// rendering choices as native quick-reply buttons.
func ToSDKMessage(msg *message.Message) messaging_api.MessageInterface {
	var quickReply *messaging_api.QuickReply
	if len(msg.Choices) > 0 {
		items := make([]messaging_api.QuickReplyItem, 0, len(msg.Choices))
		for _, c := range msg.Choices {
			items = append(items, messaging_api.QuickReplyItem{Action: toSDKAction(c)})
		}
		quickReply = &messaging_api.QuickReply{Items: items}
	}
	return messaging_api.TextMessage{
		Text:       msg.Text,
		QuickReply: quickReply,
	}
}

func toSDKAction(c message.Choice) messaging_api.ActionInterface {
	if c.Kind == message.ChoiceURI {
		return messaging_api.UriAction{
			Label: c.Label,
			Uri:   c.URI,
		}
	}
	return messaging_api.PostbackAction{
		Label:       c.Label,
		Data:        c.Data,
		DisplayText: c.Label,
	}
}
