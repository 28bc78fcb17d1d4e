package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramSender pushes through a Telegram bot. apiHost optionally
// routes the call through a proxy API host (TG_API_HOST).
type telegramSender struct {
	token   string
	userID  string
	apiHost string
}

func (s *telegramSender) Name() string { return "Telegram" }

func (s *telegramSender) Send(ctx context.Context, title, content string) error {
	var bot *tgbotapi.BotAPI
	var err error
	if s.apiHost != "" {
		endpoint := strings.TrimRight(s.apiHost, "/") + "/bot%s/%s"
		bot, err = tgbotapi.NewBotAPIWithAPIEndpoint(s.token, endpoint)
	} else {
		bot, err = tgbotapi.NewBotAPI(s.token)
	}
	if err != nil {
		return fmt.Errorf("telegram: create bot: %w", err)
	}

	chatID, err := strconv.ParseInt(s.userID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid user id %q: %w", s.userID, err)
	}
	msg := tgbotapi.NewMessage(chatID, title+"\n\n"+content)
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	return nil
}
