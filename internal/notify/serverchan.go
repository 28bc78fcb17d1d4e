package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// serverChanSender pushes through the Server酱 (ServerChan) turbo API.
type serverChanSender struct {
	key string
}

func (s *serverChanSender) Name() string { return "Server酱" }

func (s *serverChanSender) Send(ctx context.Context, title, content string) error {
	form := url.Values{
		"title": {title},
		"desp":  {content},
	}
	endpoint := fmt.Sprintf("https://sctapi.ftqq.com/%s.send", s.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("serverchan: send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("serverchan: status %d: %s", resp.StatusCode, b)
	}
	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("serverchan: parse response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("serverchan: error %d: %s", result.Code, result.Message)
	}
	return nil
}
