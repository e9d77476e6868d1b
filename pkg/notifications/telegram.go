package notifications

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const (
	defaultBaseURL   = "https://api.telegram.org"
	maxMessageLength = 4096
)

type Telegram struct {
	client   *req.Client
	apiToken string
	baseURL  string
}

func NewTelegram(
	apiToken string,
	cl *req.Client,
) *Telegram {
	return &Telegram{
		client:   cl,
		apiToken: apiToken,
		baseURL:  defaultBaseURL,
	}
}

// SendMessage posts text to the chat, split on line boundaries into parts that fit the bot API limit.
func (t *Telegram) SendMessage(
	ctx context.Context,
	chatID int64,
	text string,
) error {
	for _, part := range splitMessage(text, maxMessageLength) {
		resp, err := t.client.R().
			SetBody(map[string]interface{}{
				"chat_id": chatID,
				"text":    part,
			}).
			SetContext(ctx).
			Post(t.methodURL("sendMessage"))

		if err != nil {
			return errors.WithStack(err)
		}

		if resp.IsErrorState() {
			return errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
		}
	}

	return nil
}

func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			parts = append(parts, string(current))
			current = nil
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)

		if len(current)+len(runes) > limit {
			flush()
		}

		for len(runes) > limit {
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}

		current = append(current, runes...)
	}

	flush()

	return parts
}

// SendDocument uploads a file, used to deliver statements to the chat.
func (t *Telegram) SendDocument(
	ctx context.Context,
	chatID int64,
	fileName string,
	content []byte,
	caption string,
) error {
	resp, err := t.client.R().
		SetFormData(map[string]string{
			"chat_id": strconv.FormatInt(chatID, 10),
			"caption": caption,
		}).
		SetFileBytes("document", fileName, content).
		SetContext(ctx).
		Post(t.methodURL("sendDocument"))

	if err != nil {
		return errors.WithStack(err)
	}

	if resp.IsErrorState() {
		return errors.Newf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return nil
}

func (t *Telegram) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%v/%s", t.baseURL, t.apiToken, method)
}
