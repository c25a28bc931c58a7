package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/presencelabs/facemark/internal/facemark/service"
	"github.com/presencelabs/facemark/internal/vision"
)

var (
	attendThreshold float64
	attendFramesDir string
)

var attendCmd = &cobra.Command{
	Use:   "attend",
	Short: "Run a live attendance session",
	Long: `Attend pulls frames from the spool directory, recognizes faces against
the trained model, and records one attendance event per person per day.
Stop with Ctrl-C; the session summary is printed on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		framesDir := attendFramesDir
		if framesDir == "" {
			framesDir = app.cfg.FramesDir
		}
		threshold := attendThreshold
		if threshold <= 0 {
			threshold = app.cfg.Recognition.Threshold
		}

		recognizer := vision.NewRemoteRecognizer(app.cfg.RecognizerURL, app.cfg.Recognition.ResizeMax)
		poll := time.Duration(app.cfg.Recognition.PollIntervalMS) * time.Millisecond
		openSource := func(context.Context) (vision.FrameSource, error) {
			return vision.NewDirSource(framesDir, poll)
		}

		controller := service.NewController(
			app.identities,
			app.ledger,
			recognizer,
			openSource,
			service.ControllerConfig{
				Threshold: threshold,
				MinRegion: app.cfg.Recognition.MinRegion,
				Feedback:  printFeedback,
			},
			app.logger,
		)

		summary, err := controller.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("\nsession %s ended (%s)\n", summary.SessionID, summary.EndReason)
		fmt.Printf("  date:   %s\n", summary.Day)
		fmt.Printf("  frames: %d\n", summary.Frames)
		fmt.Printf("  marked: %d newly recorded, %d seen\n", summary.Marked, summary.Seen)
		return nil
	},
}

func printFeedback(fb service.Feedback) {
	switch fb.Kind {
	case service.FeedbackMarked:
		fmt.Printf("marked    %s (%s) score=%.1f\n",
			fb.Identity.DisplayName, fb.Identity.ExternalID, fb.Score)
	case service.FeedbackAlreadyMarked:
		fmt.Printf("already   %s (%s)\n",
			fb.Identity.DisplayName, fb.Identity.ExternalID)
	case service.FeedbackUnrecognized:
		fmt.Printf("unknown   label=%d score=%.1f (%s)\n", fb.Label, fb.Score, fb.Reason)
	}
}

func init() {
	attendCmd.Flags().Float64Var(&attendThreshold, "threshold", 0,
		"acceptance threshold on the 0-100 dissimilarity scale (default from config)")
	attendCmd.Flags().StringVar(&attendFramesDir, "frames-dir", "",
		"frame spool directory (default from config)")
	rootCmd.AddCommand(attendCmd)
}
