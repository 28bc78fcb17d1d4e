package web

import (
	"context"
	"testing"

	"github.com/coopco/renewdash/internal/notify"
	"github.com/coopco/renewdash/internal/settings"
)

func TestLoggingRunnerCheckinRecordsTrigger(t *testing.T) {
	srv := newTestServer(t, "", Options{})
	acc, err := srv.store.AddAccount(settings.Account{Name: "主账户", Enabled: true})
	if err != nil {
		t.Fatal(err)
	}

	runner := &LoggingRunner{Store: srv.store, Dispatcher: notify.NewDispatcher()}
	status, err := runner.Checkin(context.Background(), acc)
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if status != "已触发" {
		t.Fatalf("status = %q", status)
	}

	got, ok := srv.store.FindAccount(acc.ID)
	if !ok {
		t.Fatal("account vanished")
	}
	if got.LastStatus != "签到已触发" {
		t.Errorf("LastStatus = %q", got.LastStatus)
	}
	if got.LastCheckin == "" {
		t.Error("LastCheckin must record the trigger time")
	}
}

func TestLoggingRunnerRenewLeavesAccountAlone(t *testing.T) {
	srv := newTestServer(t, "", Options{})
	acc, err := srv.store.AddAccount(settings.Account{Name: "主账户", APIKey: "rk"})
	if err != nil {
		t.Fatal(err)
	}

	runner := &LoggingRunner{Store: srv.store, Dispatcher: notify.NewDispatcher()}
	if _, err := runner.Renew(context.Background(), acc); err != nil {
		t.Fatalf("renew: %v", err)
	}
	got, _ := srv.store.FindAccount(acc.ID)
	if got.LastStatus != "" {
		t.Errorf("renew must not touch LastStatus, got %q", got.LastStatus)
	}
}
