package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/presencelabs/facemark/internal/facemark/store"
	"github.com/presencelabs/facemark/internal/facemark/types"
	"github.com/presencelabs/facemark/internal/vision"
)

// ErrSessionStartFailed wraps whatever kept a session from reaching its
// running state: an empty directory, a missing model, or a frame source
// that would not open.  The caller stays alive and can retry after fixing
// the cause.
var ErrSessionStartFailed = errors.New("session start failed")

type FeedbackKind int

const (
	// FeedbackMarked: first successful record for this identity today.
	FeedbackMarked FeedbackKind = iota
	// FeedbackAlreadyMarked: identity already has a record today, whether
	// from this session's cache or a prior session's ledger row.
	FeedbackAlreadyMarked
	// FeedbackUnrecognized: the face did not pass the decision policy.
	FeedbackUnrecognized
)

// Feedback is one per-face UI event, emitted as the loop processes frames.
type Feedback struct {
	Kind     FeedbackKind
	Label    int64
	Identity IdentityInfo // zero value when unrecognized
	Score    float64
	Reason   string // rejection reason when unrecognized
}

type FeedbackFunc func(Feedback)

// Session end reasons reported in the summary.
const (
	EndStopped         = "stopped"
	EndOfStream        = "end of stream"
	EndFrameSourceLost = "frame source lost"
)

// Summary is handed to the caller when a session terminates.  It reflects
// whatever the session got done, even when the frame source died mid-run.
type Summary struct {
	SessionID string
	Day       string
	Frames    int
	Marked    int // newly recorded this session
	Seen      int // distinct accepted identities, including already-marked
	EndReason string
}

// OpenSourceFunc opens the frame source during session initialization.
type OpenSourceFunc func(ctx context.Context) (vision.FrameSource, error)

// ControllerConfig carries the session tunables.
type ControllerConfig struct {
	// Threshold is the acceptance threshold on the dissimilarity scale.
	// Zero means DefaultThreshold.
	Threshold float64

	// MinRegion drops detections whose bounding box is smaller than this
	// on either side.  Zero disables the filter.
	MinRegion int

	// Feedback receives per-face events.  Optional.
	Feedback FeedbackFunc

	// Now is the session clock.  Defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Controller runs the attendance session loop: pull a frame, recognize,
// decide, dedup, record.  Single-threaded; one Run per controller at a
// time; all state for a run lives in that call's frame.
type Controller struct {
	identities store.IdentityStore
	ledger     *Ledger
	recognizer vision.Recognizer
	openSource OpenSourceFunc
	threshold  float64
	minRegion  int
	feedback   FeedbackFunc
	now        func() time.Time
	logger     *log.Logger
}

func NewController(
	identities store.IdentityStore,
	ledger *Ledger,
	recognizer vision.Recognizer,
	openSource OpenSourceFunc,
	cfg ControllerConfig,
	logger *log.Logger,
) *Controller {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	feedback := cfg.Feedback
	if feedback == nil {
		feedback = func(Feedback) {}
	}

	return &Controller{
		identities: identities,
		ledger:     ledger,
		recognizer: recognizer,
		openSource: openSource,
		threshold:  threshold,
		minRegion:  cfg.MinRegion,
		feedback:   feedback,
		now:        now,
		logger:     logger,
	}
}

// Run drives one full session: initialize, loop until the context is
// cancelled or the frame source ends, then return the summary.  Losing the
// frame source mid-run is a graceful end, not an error; failures before the
// loop starts come back wrapped in ErrSessionStartFailed.
func (c *Controller) Run(ctx context.Context) (Summary, error) {
	// Initializing: directory snapshot, model check, frame source.
	dir, err := LoadDirectory(ctx, c.identities)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSessionStartFailed, err)
	}

	if err := c.recognizer.Ready(ctx); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSessionStartFailed, err)
	}

	src, err := c.openSource(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSessionStartFailed, err)
	}
	defer src.Close()

	// Running: fresh state, session date fixed now.
	marked := NewMarkedSet()
	summary := Summary{
		SessionID: uuid.NewString(),
		Day:       types.DayOf(c.now().UTC()),
	}

	c.logger.Printf("session %s started (identities=%d, threshold=%.0f)",
		summary.SessionID, dir.Size(), c.threshold)

	for {
		// Explicit stop wins over pulling another frame.
		select {
		case <-ctx.Done():
			return c.finish(summary, marked, EndStopped), nil
		default:
		}

		frame, err := src.Next(ctx)
		switch {
		case err == nil:
			// proceed
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return c.finish(summary, marked, EndStopped), nil
		case errors.Is(err, vision.ErrEndOfStream):
			return c.finish(summary, marked, EndOfStream), nil
		default:
			c.logger.Printf("session %s: frame source lost: %v", summary.SessionID, err)
			return c.finish(summary, marked, EndFrameSourceLost), nil
		}

		summary.Frames++

		observations, err := c.recognizer.Recognize(ctx, frame)
		if err != nil {
			if errors.Is(err, vision.ErrModelUnavailable) {
				return c.finish(summary, marked, EndStopped), err
			}
			// Transient recognizer hiccup; the frame is gone, move on.
			c.logger.Printf("session %s: recognize: %v", summary.SessionID, err)
			continue
		}

		for _, obs := range observations {
			if c.minRegion > 0 && (obs.Region.W < c.minRegion || obs.Region.H < c.minRegion) {
				continue
			}
			if err := c.handleFace(ctx, dir, marked, &summary, obs); err != nil {
				// Storage fault — ledger unusable, stop with partial results.
				return c.finish(summary, marked, EndStopped), err
			}
		}
	}
}

func (c *Controller) handleFace(
	ctx context.Context,
	dir *Directory,
	marked *MarkedSet,
	summary *Summary,
	obs vision.Observation,
) error {
	verdict := Decide(dir, obs.Label, obs.Score, c.threshold)
	if verdict.Decision == DecisionRejected {
		c.feedback(Feedback{
			Kind:   FeedbackUnrecognized,
			Label:  obs.Label,
			Score:  obs.Score,
			Reason: verdict.Reason,
		})
		return nil
	}

	if marked.AlreadyMarked(obs.Label) {
		c.feedback(Feedback{
			Kind:     FeedbackAlreadyMarked,
			Label:    obs.Label,
			Identity: verdict.Identity,
			Score:    obs.Score,
		})
		return nil
	}

	result, err := c.ledger.Record(ctx, obs.Label, summary.Day, c.now().UTC())
	if err != nil {
		return err
	}

	// Either way the ledger has a row for today, so no more calls for this
	// label this session.
	marked.Mark(obs.Label)

	switch result {
	case Recorded:
		summary.Marked++
		c.logger.Printf("session %s: marked %s (%s)",
			summary.SessionID, verdict.Identity.DisplayName, verdict.Identity.ExternalID)
		c.feedback(Feedback{
			Kind:     FeedbackMarked,
			Label:    obs.Label,
			Identity: verdict.Identity,
			Score:    obs.Score,
		})
	case AlreadyRecorded:
		c.feedback(Feedback{
			Kind:     FeedbackAlreadyMarked,
			Label:    obs.Label,
			Identity: verdict.Identity,
			Score:    obs.Score,
		})
	}
	return nil
}

func (c *Controller) finish(summary Summary, marked *MarkedSet, reason string) Summary {
	summary.Seen = marked.Len()
	summary.EndReason = reason
	c.logger.Printf("session %s ended (%s): frames=%d marked=%d seen=%d",
		summary.SessionID, reason, summary.Frames, summary.Marked, summary.Seen)
	return summary
}
