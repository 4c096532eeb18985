package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrRunTimeout reports that a run never reached a terminal status
// within the attempt budget. Distinct from a run that terminally
// failed, which surfaces the provider's own error.
var ErrRunTimeout = errors.New("run did not finish within the polling budget")

// Clock abstracts the delay between polling attempts.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

type runRetriever interface {
	RetrieveRun(ctx context.Context, threadID, runID string) (openai.Run, error)
}

// waitForRun polls a run until it completes, fails terminally, or the
// attempt budget runs out.
func waitForRun(ctx context.Context, client runRetriever, threadID, runID string, attempts int, interval time.Duration, clock Clock) (openai.Run, error) {
	var run openai.Run
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := clock.Sleep(ctx, interval); err != nil {
				return run, err
			}
		}

		var err error
		run, err = client.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}

		switch run.Status {
		case openai.RunStatusCompleted:
			return run, nil
		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired:
			msg := string(run.Status)
			if run.LastError != nil && run.LastError.Message != "" {
				msg = run.LastError.Message
			}
			return run, fmt.Errorf("run ended with status %s: %s", run.Status, msg)
		}
	}
	return run, ErrRunTimeout
}
