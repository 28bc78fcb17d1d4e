package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ErrChannelNotFound reports a test-send against an unknown channel
// id.
var ErrChannelNotFound = errors.New("通知渠道不存在")

// Sender delivers one notification through a concrete transport.
type Sender interface {
	Name() string
	Send(ctx context.Context, title, content string) error
}

// Resolve maps a channel config to the senders its keys activate. The
// resolution is key-driven like the legacy flat config, so a custom
// channel carrying a PUSH_KEY reaches Server酱 exactly like a typed
// one.
func Resolve(config map[string]any) []Sender {
	var senders []Sender
	if consoleTruthy(config["CONSOLE"]) {
		senders = append(senders, consoleSender{})
	}
	if key := stringValue(config["PUSH_KEY"]); key != "" {
		senders = append(senders, &serverChanSender{key: key})
	}
	token := stringValue(config["TG_BOT_TOKEN"])
	user := stringValue(config["TG_USER_ID"])
	if token != "" && user != "" {
		senders = append(senders, &telegramSender{
			token:   token,
			userID:  user,
			apiHost: stringValue(config["TG_API_HOST"]),
		})
	}
	if token := stringValue(config["PUSH_PLUS_TOKEN"]); token != "" {
		senders = append(senders, &pushPlusSender{
			token: token,
			topic: stringValue(config["PUSH_PLUS_USER"]),
		})
	}
	if push := stringValue(config["BARK_PUSH"]); push != "" {
		senders = append(senders, &barkSender{push: push})
	}
	return senders
}

// Dispatcher fans notifications out across channels.
type Dispatcher struct {
	// resolve is replaceable in tests; nil means Resolve.
	resolve func(map[string]any) []Sender
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{resolve: Resolve}
}

// Send pushes title/content through every enabled channel. skipTitles
// is the newline-separated suppression list from the settings; a
// matching title is dropped before any transport is touched. Each
// sender runs on its own goroutine and the call returns once all have
// finished; individual failures are logged, never fatal.
func (d *Dispatcher) Send(ctx context.Context, channels []Channel, skipTitles, title, content string) {
	if content == "" {
		slog.Warn("notify: empty content, nothing sent", "title", title)
		return
	}
	for _, skip := range strings.Split(skipTitles, "\n") {
		if skip != "" && skip == title {
			slog.Info("notify: title on skip list, not sent", "title", title)
			return
		}
	}

	var wg sync.WaitGroup
	for _, ch := range channels {
		if !ch.Enabled {
			continue
		}
		senders := d.resolveSenders(ch.Config)
		if len(senders) == 0 {
			slog.Warn("notify: channel config matches no transport", "channel", channelLabel(ch))
			continue
		}
		for _, sender := range senders {
			wg.Add(1)
			go func(s Sender) {
				defer wg.Done()
				if err := s.Send(ctx, title, content); err != nil {
					slog.Error("notify: send failed", "sender", s.Name(), "error", err)
				}
			}(sender)
		}
	}
	wg.Wait()
}

// Test sends a fixed test notification through the channel with the
// given id and returns the transport names it reached.
func (d *Dispatcher) Test(ctx context.Context, channels []Channel, channelID string) ([]string, error) {
	var target *Channel
	for i := range channels {
		if channels[i].ID == channelID {
			target = &channels[i]
			break
		}
	}
	if target == nil {
		return nil, ErrChannelNotFound
	}
	if len(target.Config) == 0 {
		return nil, errors.New("通知配置为空")
	}
	senders := d.resolveSenders(target.Config)
	if len(senders) == 0 {
		return nil, errors.New("通知配置无效，未命中任何渠道")
	}

	names := make([]string, 0, len(senders))
	for _, sender := range senders {
		if err := sender.Send(ctx, "通知测试", "这是一条测试通知"); err != nil {
			return nil, fmt.Errorf("%s 发送失败: %w", sender.Name(), err)
		}
		names = append(names, sender.Name())
	}
	return names, nil
}

func (d *Dispatcher) resolveSenders(config map[string]any) []Sender {
	if d.resolve != nil {
		return d.resolve(config)
	}
	return Resolve(config)
}

func channelLabel(ch Channel) string {
	if ch.Name != "" {
		return ch.Name
	}
	if ch.Type != "" {
		return string(ch.Type)
	}
	return "未知渠道"
}
