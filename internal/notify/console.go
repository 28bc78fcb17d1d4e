package notify

import (
	"context"
	"fmt"
	"io"
	"os"
)

// consoleSender writes the notification to standard output. Used by
// the console channel type and handy when no remote transport is
// configured.
type consoleSender struct {
	out io.Writer
}

func (s consoleSender) Name() string { return "控制台" }

func (s consoleSender) Send(_ context.Context, title, content string) error {
	w := s.out
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s\n", title, content)
	return err
}
