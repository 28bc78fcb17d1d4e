package web

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coopco/renewdash/internal/notify"
	"github.com/coopco/renewdash/internal/settings"
)

// LoggingRunner is the default ActionRunner: it records the trigger on
// the account and pushes a notification, leaving the actual check-in
// or renewal to the external automation that watches the store. It
// stands in until a real executor is wired up.
type LoggingRunner struct {
	Store      *settings.Store
	Dispatcher *notify.Dispatcher
}

func (r *LoggingRunner) Checkin(ctx context.Context, acc settings.Account) (string, error) {
	slog.Info("action: checkin triggered", "account", acc.ID)
	r.markTriggered(acc, "签到")
	r.push(ctx, "签到通知", fmt.Sprintf("账户 %s 的签到已触发", accountLabel(acc)))
	return "已触发", nil
}

func (r *LoggingRunner) Renew(ctx context.Context, acc settings.Account) (string, error) {
	slog.Info("action: renew triggered", "account", acc.ID)
	r.push(ctx, "续费通知", fmt.Sprintf("账户 %s 的续费已触发", accountLabel(acc)))
	return "已触发", nil
}

func (r *LoggingRunner) markTriggered(acc settings.Account, status string) {
	acc.LastStatus = status + "已触发"
	acc.LastCheckin = time.Now().Format("2006-01-02 15:04:05")
	if err := r.Store.UpdateAccount(acc.ID, acc); err != nil {
		slog.Warn("action: failed to record trigger", "account", acc.ID, "error", err)
	}
}

func (r *LoggingRunner) push(ctx context.Context, title, content string) {
	st := r.Store.Settings()
	r.Dispatcher.Send(ctx, st.NotifyChannels, st.SkipPushTitle, title, content)
}

func accountLabel(acc settings.Account) string {
	if acc.Name != "" {
		return acc.Name
	}
	return acc.ID
}
