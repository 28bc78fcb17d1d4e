package notify

import (
	"strings"
	"testing"
)

func TestBuildConfigConsole(t *testing.T) {
	config, err := BuildConfig(TypeConsole, Form{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["CONSOLE"] != "true" {
		t.Fatalf("config = %v", config)
	}
}

func TestBuildConfigServerChan(t *testing.T) {
	if _, err := BuildConfig(TypeServerChan, Form{}); err == nil {
		t.Fatal("expected error for missing PUSH_KEY")
	}
	config, err := BuildConfig(TypeServerChan, Form{PushKey: "  sk-1  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["PUSH_KEY"] != "sk-1" {
		t.Fatalf("PUSH_KEY not trimmed: %v", config)
	}
}

func TestBuildConfigTelegram(t *testing.T) {
	for _, form := range []Form{{}, {TgToken: "tok"}, {TgUser: "42"}} {
		if _, err := BuildConfig(TypeTelegram, form); err == nil {
			t.Errorf("form %+v: expected error", form)
		}
	}

	config, err := BuildConfig(TypeTelegram, Form{TgToken: "tok", TgUser: "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := config["TG_API_HOST"]; ok {
		t.Error("empty api host must be omitted")
	}

	config, err = BuildConfig(TypeTelegram, Form{TgToken: "tok", TgUser: "42", TgHost: "https://proxy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["TG_API_HOST"] != "https://proxy" {
		t.Fatalf("config = %v", config)
	}
}

func TestBuildConfigPushPlus(t *testing.T) {
	if _, err := BuildConfig(TypePushPlus, Form{}); err == nil {
		t.Fatal("expected error for missing token")
	}
	config, err := BuildConfig(TypePushPlus, Form{PushPlusToken: "pp", PushPlusUser: "group"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["PUSH_PLUS_TOKEN"] != "pp" || config["PUSH_PLUS_USER"] != "group" {
		t.Fatalf("config = %v", config)
	}
}

func TestBuildConfigBark(t *testing.T) {
	if _, err := BuildConfig(TypeBark, Form{}); err == nil {
		t.Fatal("expected error for missing push target")
	}
	config, err := BuildConfig(TypeBark, Form{BarkPush: "https://api.day.app/key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["BARK_PUSH"] != "https://api.day.app/key" {
		t.Fatalf("config = %v", config)
	}
}

func TestBuildConfigCustom(t *testing.T) {
	if _, err := BuildConfig(TypeCustom, Form{}); err == nil {
		t.Fatal("expected error for empty JSON")
	}
	if _, err := BuildConfig(TypeCustom, Form{CustomJSON: "{broken"}); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	_, err := BuildConfig(TypeCustom, Form{CustomJSON: "[1,2,3]"})
	if err == nil || !strings.Contains(err.Error(), "需为对象") {
		t.Fatalf("array must be rejected, got %v", err)
	}

	config, err := BuildConfig(TypeCustom, Form{CustomJSON: `{"WEBHOOK": "https://hook", "RETRIES": 3}`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config["WEBHOOK"] != "https://hook" || config["RETRIES"] != float64(3) {
		t.Fatalf("config = %v", config)
	}
}

func TestBuildConfigUnknownType(t *testing.T) {
	config, err := BuildConfig(Type("mystery"), Form{PushKey: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(config) != 0 {
		t.Fatalf("config = %v, want empty", config)
	}
}
