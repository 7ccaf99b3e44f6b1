package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaodiag/facebot/bot/conversation"
	"github.com/kaodiag/facebot/bot/dispatch"
	"github.com/kaodiag/facebot/bot/message"
	"github.com/kaodiag/facebot/bot/session"
	coreconfig "github.com/kaodiag/facebot/core/config"
)

const testChannelSecret = "test-channel-secret"

type recordingGateway struct {
	tokens   []string
	messages []*message.Message
}

func (g *recordingGateway) Reply(_ context.Context, replyToken string, msg *message.Message) error {
	g.tokens = append(g.tokens, replyToken)
	g.messages = append(g.messages, msg)
	return nil
}

func newTestServer(gw dispatch.ReplyGateway) *Server {
	cfg := &coreconfig.Config{}
	cfg.Line.ChannelSecret = testChannelSecret
	cfg.Line.ChannelToken = "test-token"
	cfg.Bot.TriggerPhrase = coreconfig.DefaultTriggerPhrase

	ctrl := conversation.New(session.NewMemoryStore(), "")
	d := dispatch.NewDispatcher(ctrl, gw, cfg.Bot.TriggerPhrase)
	return NewServer(cfg, d)
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(testChannelSecret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&recordingGateway{})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHealthUnknownPath(t *testing.T) {
	s := newTestServer(&recordingGateway{})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCallbackRejectsNonPost(t *testing.T) {
	s := newTestServer(&recordingGateway{})

	rec := httptest.NewRecorder()
	s.handleCallback(rec, httptest.NewRequest(http.MethodGet, "/callback", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCallbackRejectsInvalidSignature(t *testing.T) {
	s := newTestServer(&recordingGateway{})

	body := `{"destination":"xxx","events":[]}`
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("x-line-signature", "bm90LWEtcmVhbC1zaWduYXR1cmU=")

	rec := httptest.NewRecorder()
	s.handleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallbackAcceptsSignedDelivery(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(gw)

	body := `{"destination":"xxx","events":[{` +
		`"type":"message","mode":"active","timestamp":1700000000000,` +
		`"webhookEventId":"01HTEST","deliveryContext":{"isRedelivery":false},` +
		`"replyToken":"rt-1",` +
		`"source":{"type":"user","userId":"U1"},` +
		`"message":{"type":"text","id":"m1","quoteToken":"q1","text":"かんたん診断"}}]}`

	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("x-line-signature", signBody(body))

	rec := httptest.NewRecorder()
	s.handleCallback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	require.Len(t, gw.messages, 1)
	assert.Equal(t, "rt-1", gw.tokens[0])
	assert.Equal(t, message.QuestionOne().Text, gw.messages[0].Text)
}

func TestCallbackEmptyDelivery(t *testing.T) {
	gw := &recordingGateway{}
	s := newTestServer(gw)

	body := `{"destination":"xxx","events":[]}`
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("x-line-signature", signBody(body))

	rec := httptest.NewRecorder()
	s.handleCallback(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, gw.messages)
}
