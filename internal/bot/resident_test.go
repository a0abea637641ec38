package bot

import (
	"io"
	"net/http"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// stubHTTPClient answers every Telegram API call with an ok envelope and
// records the called methods.
type stubHTTPClient struct {
	methods []string
}

func (c *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.methods = append(c.methods, req.URL.Path)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":true}`)),
	}, nil
}

func newStubbedResidentBot(client *stubHTTPClient) *ResidentBot {
	api := &tgbotapi.BotAPI{Client: client, Buffer: 100}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)
	return &ResidentBot{api: api, logger: zap.NewNop()}
}

func TestResidentCallback_WithoutMessage(t *testing.T) {
	client := &stubHTTPClient{}
	b := newStubbedResidentBot(client)

	// Callbacks can arrive without an accessible message; the handler
	// must still answer them instead of dereferencing a nil message.
	b.handleCallback(&tgbotapi.CallbackQuery{ID: "1", Data: callbackDeveloperInfo})

	answered := false
	for _, method := range client.methods {
		if strings.Contains(method, "answerCallbackQuery") {
			answered = true
		}
	}
	if !answered {
		t.Error("Expected the callback to be answered")
	}
}

func TestResidentCallback_DeveloperInfo(t *testing.T) {
	client := &stubHTTPClient{}
	b := newStubbedResidentBot(client)

	callback := &tgbotapi.CallbackQuery{
		ID:      "1",
		Data:    callbackDeveloperInfo,
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 100}},
	}

	b.handleCallback(callback)

	sent := false
	for _, method := range client.methods {
		if strings.Contains(method, "sendMessage") {
			sent = true
		}
	}
	if !sent {
		t.Error("Expected the developer info message to be sent")
	}
}
