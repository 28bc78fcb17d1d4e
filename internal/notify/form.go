package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Form carries the raw channel-editor field values. Only the fields
// relevant to the chosen type are read; the rest are ignored.
type Form struct {
	PushKey       string `json:"push_key"`
	TgToken       string `json:"tg_bot_token"`
	TgUser        string `json:"tg_user_id"`
	TgHost        string `json:"tg_api_host"`
	PushPlusToken string `json:"push_plus_token"`
	PushPlusUser  string `json:"push_plus_user"`
	BarkPush      string `json:"bark_push"`
	CustomJSON    string `json:"custom_config"`
}

// BuildConfig validates the form fields a channel type requires and
// assembles its config map. Errors are user-facing validation
// messages, not system faults; no state is touched on failure.
func BuildConfig(t Type, form Form) (map[string]any, error) {
	switch t {
	case TypeConsole:
		return map[string]any{"CONSOLE": "true"}, nil
	case TypeServerChan:
		key := strings.TrimSpace(form.PushKey)
		if key == "" {
			return nil, errors.New("请填写 Server酱 PUSH_KEY")
		}
		return map[string]any{"PUSH_KEY": key}, nil
	case TypeTelegram:
		token := strings.TrimSpace(form.TgToken)
		user := strings.TrimSpace(form.TgUser)
		if token == "" || user == "" {
			return nil, errors.New("Telegram 需要同时填写 Bot Token 与用户ID")
		}
		config := map[string]any{"TG_BOT_TOKEN": token, "TG_USER_ID": user}
		if host := strings.TrimSpace(form.TgHost); host != "" {
			config["TG_API_HOST"] = host
		}
		return config, nil
	case TypePushPlus:
		token := strings.TrimSpace(form.PushPlusToken)
		if token == "" {
			return nil, errors.New("PushPlus 需要填写 Token")
		}
		config := map[string]any{"PUSH_PLUS_TOKEN": token}
		if user := strings.TrimSpace(form.PushPlusUser); user != "" {
			config["PUSH_PLUS_USER"] = user
		}
		return config, nil
	case TypeBark:
		push := strings.TrimSpace(form.BarkPush)
		if push == "" {
			return nil, errors.New("请填写 Bark 推送地址")
		}
		return map[string]any{"BARK_PUSH": push}, nil
	case TypeCustom:
		raw := strings.TrimSpace(form.CustomJSON)
		if raw == "" {
			return nil, errors.New("请填写自定义 JSON")
		}
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("自定义 JSON 解析失败: %w", err)
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return nil, errors.New("自定义 JSON 需为对象")
		}
		return obj, nil
	}
	return map[string]any{}, nil
}
