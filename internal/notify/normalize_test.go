package notify

import (
	"strings"
	"testing"
)

func TestMigrateLegacyExtractionOrder(t *testing.T) {
	channels := MigrateLegacy(map[string]any{
		"PUSH_KEY":    "abc123",
		"UNKNOWN_KEY": "x",
	})
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
	if channels[0].Type != TypeServerChan {
		t.Errorf("first channel type = %q, want serverj", channels[0].Type)
	}
	if got := channels[0].Config["PUSH_KEY"]; got != "abc123" {
		t.Errorf("serverj config PUSH_KEY = %v, want abc123", got)
	}
	if channels[1].Type != TypeCustom {
		t.Errorf("second channel type = %q, want custom", channels[1].Type)
	}
	if got := channels[1].Config["UNKNOWN_KEY"]; got != "x" {
		t.Errorf("custom leftover = %v, want UNKNOWN_KEY preserved", channels[1].Config)
	}
	if _, ok := channels[1].Config["PUSH_KEY"]; ok {
		t.Error("PUSH_KEY must be consumed before the leftover sweep")
	}
}

func TestMigrateLegacyAllTypes(t *testing.T) {
	channels := MigrateLegacy(map[string]any{
		"CONSOLE":         "1",
		"PUSH_KEY":        "sk",
		"TG_BOT_TOKEN":    "token",
		"TG_USER_ID":      "42",
		"TG_API_HOST":     "https://proxy.example.com",
		"PUSH_PLUS_TOKEN": "pp",
		"PUSH_PLUS_USER":  "group",
		"BARK_PUSH":       "device",
		"EXTRA":           "leftover",
	})

	wantTypes := []Type{TypeConsole, TypeServerChan, TypeTelegram, TypePushPlus, TypeBark, TypeCustom}
	if len(channels) != len(wantTypes) {
		t.Fatalf("expected %d channels, got %d", len(wantTypes), len(channels))
	}
	for i, want := range wantTypes {
		if channels[i].Type != want {
			t.Errorf("channel %d type = %q, want %q", i, channels[i].Type, want)
		}
		if !channels[i].Enabled {
			t.Errorf("channel %d must default enabled", i)
		}
	}

	tg := channels[2].Config
	if tg["TG_BOT_TOKEN"] != "token" || tg["TG_USER_ID"] != "42" || tg["TG_API_HOST"] != "https://proxy.example.com" {
		t.Errorf("telegram config = %v", tg)
	}
	if channels[3].Config["PUSH_PLUS_USER"] != "group" {
		t.Errorf("pushplus config = %v", channels[3].Config)
	}
	custom := channels[5].Config
	if len(custom) != 1 || custom["EXTRA"] != "leftover" {
		t.Errorf("custom leftover = %v, want only EXTRA", custom)
	}
}

func TestMigrateLegacyConsoleFlag(t *testing.T) {
	for _, truthy := range []any{"true", true, 1, "1", float64(1)} {
		channels := MigrateLegacy(map[string]any{"CONSOLE": truthy})
		if len(channels) != 1 || channels[0].Type != TypeConsole {
			t.Errorf("CONSOLE=%v: got %+v, want one console channel", truthy, channels)
			continue
		}
		if channels[0].Config["CONSOLE"] != "true" {
			t.Errorf("CONSOLE=%v: config = %v", truthy, channels[0].Config)
		}
	}

	// A falsy CONSOLE is not consumed; it falls through to the
	// custom leftover like any other unclaimed key.
	channels := MigrateLegacy(map[string]any{"CONSOLE": "false"})
	if len(channels) != 1 || channels[0].Type != TypeCustom {
		t.Fatalf("falsy CONSOLE: got %+v, want custom leftover", channels)
	}
	if _, ok := channels[0].Config["CONSOLE"]; !ok {
		t.Error("falsy CONSOLE must survive in the leftover config")
	}
}

func TestMigrateLegacyTelegramNeedsBothKeys(t *testing.T) {
	channels := MigrateLegacy(map[string]any{"TG_BOT_TOKEN": "token"})
	if len(channels) != 1 || channels[0].Type != TypeCustom {
		t.Fatalf("got %+v, want the lone token in a custom leftover", channels)
	}
}

func TestMigrateLegacyCoercesValues(t *testing.T) {
	channels := MigrateLegacy(map[string]any{"PUSH_KEY": float64(12345)})
	if len(channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(channels))
	}
	if got := channels[0].Config["PUSH_KEY"]; got != "12345" {
		t.Fatalf("PUSH_KEY = %v (%T), want string 12345", got, got)
	}
}

func TestMigrateLegacyEmpty(t *testing.T) {
	if channels := MigrateLegacy(nil); len(channels) != 0 {
		t.Fatalf("expected no channels, got %+v", channels)
	}
}

func TestNormalizePrefersChannelList(t *testing.T) {
	doc := []byte(`{
		"notify_channels": [
			{"type": "bark", "config": {"BARK_PUSH": "https://bark.example.com/key"}}
		],
		"notify_config": {"PUSH_KEY": "ignored"}
	}`)
	channels := Normalize(doc)
	if len(channels) != 1 || channels[0].Type != TypeBark {
		t.Fatalf("got %+v, want the bark channel only", channels)
	}
	if channels[0].ID == "" || !strings.HasPrefix(channels[0].ID, "notify_") {
		t.Errorf("missing id must be generated, got %q", channels[0].ID)
	}
	if !channels[0].Enabled {
		t.Error("enabled must default true")
	}
}

func TestNormalizeEntryDefaults(t *testing.T) {
	doc := []byte(`{"notify_channels": [
		{},
		{"id": "notify_1_x", "type": "serverj", "enabled": false, "config": "not an object"}
	]}`)
	channels := Normalize(doc)
	if len(channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(channels))
	}
	if channels[0].Type != TypeCustom || !channels[0].Enabled || channels[0].Config == nil {
		t.Errorf("empty entry defaults wrong: %+v", channels[0])
	}
	if channels[1].Enabled {
		t.Error("explicit enabled=false must stick")
	}
	if len(channels[1].Config) != 0 {
		t.Errorf("non-object config must become empty, got %v", channels[1].Config)
	}
}

func TestNormalizeFallsBackToLegacy(t *testing.T) {
	doc := []byte(`{"notify_channels": [], "notify_config": {"PUSH_KEY": "abc123"}}`)
	channels := Normalize(doc)
	if len(channels) != 1 || channels[0].Type != TypeServerChan {
		t.Fatalf("got %+v, want migration from legacy config", channels)
	}
}

func TestNormalizeNothingConfigured(t *testing.T) {
	if channels := Normalize([]byte(`{}`)); len(channels) != 0 {
		t.Fatalf("expected no channels, got %+v", channels)
	}
}

func TestNewIDFormat(t *testing.T) {
	id := NewID("")
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "notify" || parts[2] == "" {
		t.Fatalf("unexpected id format %q", id)
	}
	if got := NewID("console"); !strings.HasSuffix(got, "_console") {
		t.Fatalf("suffix override ignored: %q", got)
	}
}
