package notify

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Type identifies a notification channel kind. The set is closed: the
// config builder and summarizer switch over it exhaustively, so adding
// a channel type is a compile-time-checked change.
type Type string

const (
	TypeServerChan Type = "serverj"
	TypeTelegram   Type = "telegram"
	TypePushPlus   Type = "pushplus"
	TypeBark       Type = "bark"
	TypeConsole    Type = "console"
	TypeCustom     Type = "custom"
)

// TypeLabel returns the dashboard display label for a channel type.
func TypeLabel(t Type) string {
	switch t {
	case TypeServerChan:
		return "Server酱"
	case TypeTelegram:
		return "Telegram"
	case TypePushPlus:
		return "PushPlus"
	case TypeBark:
		return "Bark"
	case TypeConsole:
		return "控制台"
	case TypeCustom:
		return "自定义 JSON"
	}
	return string(t)
}

// Channel is one configured notification destination. Config holds
// string values for the typed channels and an arbitrary JSON object
// for custom ones.
type Channel struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Type    Type           `json:"type"`
	Enabled bool           `json:"enabled"`
	Config  map[string]any `json:"config"`
}

// NewID generates a channel id in the persisted
// notify_<millis>_<suffix> format. Channels created in the editor get
// a random suffix; legacy migration passes the channel type instead.
func NewID(suffix string) string {
	if suffix == "" {
		buf := make([]byte, 3)
		rand.Read(buf)
		suffix = hex.EncodeToString(buf)
	}
	return fmt.Sprintf("notify_%d_%s", time.Now().UnixMilli(), suffix)
}

// stringValue renders a loosely-typed config value the way the legacy
// dashboard did: strings pass through, booleans and numbers get their
// JSON text, absent values become empty.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	}
	return fmt.Sprint(v)
}

// present mirrors the legacy truthiness test on config values: empty
// strings, false, zero and absent values all count as missing.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	return true
}

// consoleTruthy reports whether a CONSOLE flag is switched on. The
// legacy config stored it as any of "true", true, 1 or "1".
func consoleTruthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "1"
	case float64:
		return val == 1
	case int:
		return val == 1
	}
	return false
}
