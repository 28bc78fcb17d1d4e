package notify

import "testing"

func TestMaskValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"abcdef", "abcdef"},
		{"abcdefg", "abc***efg"},
		{"abcdefgh", "abc***fgh"},
		{"SCT123456789ABCDEF", "SCT***DEF"},
	}
	for _, tt := range tests {
		if got := MaskValue(tt.raw); got != tt.want {
			t.Errorf("MaskValue(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		ch   Channel
		want string
	}{
		{
			name: "serverchan masks the key",
			ch:   Channel{Type: TypeServerChan, Config: map[string]any{"PUSH_KEY": "SCT123456789"}},
			want: "SCT***789",
		},
		{
			name: "telegram shows the user id",
			ch:   Channel{Type: TypeTelegram, Config: map[string]any{"TG_USER_ID": "42"}},
			want: "用户 42",
		},
		{
			name: "telegram without user",
			ch:   Channel{Type: TypeTelegram, Config: map[string]any{}},
			want: "用户 -",
		},
		{
			name: "pushplus masks the token",
			ch:   Channel{Type: TypePushPlus, Config: map[string]any{"PUSH_PLUS_TOKEN": "pp12345678"}},
			want: "Token pp1***678",
		},
		{
			name: "bark strips https scheme",
			ch:   Channel{Type: TypeBark, Config: map[string]any{"BARK_PUSH": "https://api.day.app/key"}},
			want: "api.day.app/key",
		},
		{
			name: "bark strips http scheme",
			ch:   Channel{Type: TypeBark, Config: map[string]any{"BARK_PUSH": "http://bark.local/key"}},
			want: "bark.local/key",
		},
		{
			name: "console",
			ch:   Channel{Type: TypeConsole},
			want: "控制台输出",
		},
		{
			name: "custom",
			ch:   Channel{Type: TypeCustom, Config: map[string]any{"WEBHOOK": "x"}},
			want: "自定义 JSON",
		},
		{
			name: "unknown type",
			ch:   Channel{Type: Type("mystery")},
			want: "-",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.ch); got != tt.want {
				t.Errorf("Summarize = %q, want %q", got, tt.want)
			}
		})
	}
}
