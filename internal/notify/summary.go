package notify

import "strings"

// Summarize produces the short description shown in the channel list,
// masking secrets where the raw value would leak.
func Summarize(ch Channel) string {
	switch ch.Type {
	case TypeServerChan:
		return MaskValue(configString(ch.Config, "PUSH_KEY"))
	case TypeTelegram:
		user := configString(ch.Config, "TG_USER_ID")
		if user == "" {
			user = "-"
		}
		return "用户 " + user
	case TypePushPlus:
		return "Token " + MaskValue(configString(ch.Config, "PUSH_PLUS_TOKEN"))
	case TypeBark:
		addr := configString(ch.Config, "BARK_PUSH")
		addr = strings.TrimPrefix(addr, "https://")
		return strings.TrimPrefix(addr, "http://")
	case TypeConsole:
		return "控制台输出"
	case TypeCustom:
		return "自定义 JSON"
	}
	return "-"
}

// MaskValue shortens a secret for display: values up to six characters
// pass through, longer ones keep only the first and last three.
func MaskValue(raw string) string {
	if len(raw) <= 6 {
		return raw
	}
	return raw[:3] + "***" + raw[len(raw)-3:]
}

func configString(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	return stringValue(cfg[key])
}
