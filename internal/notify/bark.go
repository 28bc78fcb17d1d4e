package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// barkSender pushes to a Bark endpoint. push is either a full server
// URL or a bare device key on the public api.day.app host.
type barkSender struct {
	push string
}

func (s *barkSender) Name() string { return "Bark" }

func (s *barkSender) Send(ctx context.Context, title, content string) error {
	endpoint := s.push
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://api.day.app/" + endpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")

	body, _ := json.Marshal(map[string]string{
		"title": title,
		"body":  content,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("bark: send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bark: status %d: %s", resp.StatusCode, b)
	}
	return nil
}
