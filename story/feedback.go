package story

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// FeedbackReader supplies one round of user feedback per call. An empty
// string means the user accepts the current draft.
type FeedbackReader interface {
	Next(ctx context.Context) (string, error)
}

// ScannerFeedback reads feedback lines from a stream, typically stdin.
// The same instance should serve both the initial request prompt and
// the feedback loop so buffered input is not lost between reads.
type ScannerFeedback struct {
	scanner *bufio.Scanner
}

// NewScannerFeedback wraps r in a line-oriented feedback reader.
func NewScannerFeedback(r io.Reader) *ScannerFeedback {
	return &ScannerFeedback{scanner: bufio.NewScanner(r)}
}

// Next reads one line of input. End of input counts as acceptance.
func (s *ScannerFeedback) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}
