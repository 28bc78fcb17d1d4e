package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// pushPlusSender pushes through the PushPlus open API. topic is the
// optional group code (PUSH_PLUS_USER in the stored config).
type pushPlusSender struct {
	token string
	topic string
}

func (s *pushPlusSender) Name() string { return "PushPlus" }

func (s *pushPlusSender) Send(ctx context.Context, title, content string) error {
	payload := map[string]string{
		"token":    s.token,
		"title":    title,
		"content":  content,
		"template": "html",
	}
	if s.topic != "" {
		payload["topic"] = s.topic
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://www.pushplus.plus/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushplus: send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushplus: status %d: %s", resp.StatusCode, b)
	}
	var result struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("pushplus: parse response: %w", err)
	}
	if result.Code != 200 {
		return fmt.Errorf("pushplus: error %d: %s", result.Code, result.Msg)
	}
	return nil
}
