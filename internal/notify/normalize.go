package notify

import (
	"github.com/tidwall/gjson"
)

// Normalize extracts the channel list from a raw settings document. A
// non-empty notify_channels array wins; otherwise channels are derived
// from the legacy flat notify_config map. Entries of unexpected shape
// degrade to defaults instead of failing.
func Normalize(settingsJSON []byte) []Channel {
	list := gjson.GetBytes(settingsJSON, "notify_channels")
	if list.IsArray() {
		if entries := list.Array(); len(entries) > 0 {
			channels := make([]Channel, 0, len(entries))
			for _, entry := range entries {
				channels = append(channels, channelFromJSON(entry))
			}
			return channels
		}
	}
	return MigrateLegacy(objectMap(gjson.GetBytes(settingsJSON, "notify_config")))
}

func channelFromJSON(entry gjson.Result) Channel {
	ch := Channel{
		ID:      entry.Get("id").String(),
		Name:    entry.Get("name").String(),
		Type:    Type(entry.Get("type").String()),
		Enabled: true,
		Config:  map[string]any{},
	}
	if ch.ID == "" {
		ch.ID = NewID("")
	}
	if ch.Type == "" {
		ch.Type = TypeCustom
	}
	// Enabled defaults true unless the entry says false explicitly.
	if enabled := entry.Get("enabled"); enabled.Type == gjson.False {
		ch.Enabled = false
	}
	if cfg := objectMap(entry.Get("config")); cfg != nil {
		ch.Config = cfg
	}
	return ch
}

func objectMap(result gjson.Result) map[string]any {
	if !result.IsObject() {
		return nil
	}
	obj, ok := result.Value().(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

// MigrateLegacy converts the pre-channel flat notification config into
// typed channels. Keys are checked in a fixed order and consumed as
// they match, so later rules and the final leftover sweep never see
// them twice; anything still unclaimed lands in a single trailing
// custom channel. Each migrated channel gets a fresh id suffixed with
// its type and the fixed display name for that type.
func MigrateLegacy(config map[string]any) []Channel {
	var channels []Channel
	if len(config) == 0 {
		return channels
	}

	legacy := make(map[string]any, len(config))
	for k, v := range config {
		legacy[k] = v
	}

	if consoleTruthy(legacy["CONSOLE"]) {
		channels = append(channels, Channel{
			ID:      NewID("console"),
			Name:    "控制台",
			Type:    TypeConsole,
			Enabled: true,
			Config:  map[string]any{"CONSOLE": "true"},
		})
		delete(legacy, "CONSOLE")
	}
	if present(legacy["PUSH_KEY"]) {
		channels = append(channels, Channel{
			ID:      NewID("serverj"),
			Name:    "Server酱",
			Type:    TypeServerChan,
			Enabled: true,
			Config:  map[string]any{"PUSH_KEY": stringValue(legacy["PUSH_KEY"])},
		})
		delete(legacy, "PUSH_KEY")
	}
	if present(legacy["TG_BOT_TOKEN"]) && present(legacy["TG_USER_ID"]) {
		cfg := map[string]any{
			"TG_BOT_TOKEN": stringValue(legacy["TG_BOT_TOKEN"]),
			"TG_USER_ID":   stringValue(legacy["TG_USER_ID"]),
		}
		if present(legacy["TG_API_HOST"]) {
			cfg["TG_API_HOST"] = stringValue(legacy["TG_API_HOST"])
		}
		channels = append(channels, Channel{
			ID:      NewID("telegram"),
			Name:    "Telegram",
			Type:    TypeTelegram,
			Enabled: true,
			Config:  cfg,
		})
		delete(legacy, "TG_BOT_TOKEN")
		delete(legacy, "TG_USER_ID")
		delete(legacy, "TG_API_HOST")
	}
	if present(legacy["PUSH_PLUS_TOKEN"]) {
		cfg := map[string]any{"PUSH_PLUS_TOKEN": stringValue(legacy["PUSH_PLUS_TOKEN"])}
		if present(legacy["PUSH_PLUS_USER"]) {
			cfg["PUSH_PLUS_USER"] = stringValue(legacy["PUSH_PLUS_USER"])
		}
		channels = append(channels, Channel{
			ID:      NewID("pushplus"),
			Name:    "PushPlus",
			Type:    TypePushPlus,
			Enabled: true,
			Config:  cfg,
		})
		delete(legacy, "PUSH_PLUS_TOKEN")
		delete(legacy, "PUSH_PLUS_USER")
	}
	if present(legacy["BARK_PUSH"]) {
		channels = append(channels, Channel{
			ID:      NewID("bark"),
			Name:    "Bark",
			Type:    TypeBark,
			Enabled: true,
			Config:  map[string]any{"BARK_PUSH": stringValue(legacy["BARK_PUSH"])},
		})
		delete(legacy, "BARK_PUSH")
	}
	if len(legacy) > 0 {
		channels = append(channels, Channel{
			ID:      NewID("custom"),
			Name:    "高级 JSON",
			Type:    TypeCustom,
			Enabled: true,
			Config:  legacy,
		})
	}
	return channels
}
