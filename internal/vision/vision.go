// Package vision wraps the external frame-capture and face-recognition
// capabilities behind small interfaces the session controller can drive.
// The recognition score convention is dissimilarity: lower means more
// similar, 0 is a perfect match, and there is no guaranteed upper bound.
package vision

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrEndOfStream is returned by a FrameSource when no further frames
	// will arrive.  It is the normal way a session's input ends.
	ErrEndOfStream = errors.New("frame source: end of stream")

	// ErrModelUnavailable means the recognition capability has no trained
	// model to match against.  Fatal to session start.
	ErrModelUnavailable = errors.New("recognizer: no trained model available")
)

// Region is a face bounding box in frame pixel coordinates.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Frame is one captured image pulled from a FrameSource.
type Frame struct {
	Image  image.Image
	Source string // file path or device name, for feedback only
}

// Observation is the recognizer's verdict on one detected face: its best
// label guess and the dissimilarity score for that guess.
type Observation struct {
	Region Region
	Label  int64
	Score  float64
}

// FrameSource is a blocking pull interface over a camera, spool directory,
// or scripted test source.
type FrameSource interface {
	// Next blocks until a frame is available, the stream ends
	// (ErrEndOfStream), or ctx is cancelled.
	Next(ctx context.Context) (Frame, error)
	Close() error
}

// Recognizer detects and identifies faces in a frame.  A frame with no
// faces yields an empty slice and a nil error.
type Recognizer interface {
	// Ready reports whether a trained model is loaded.  Returns
	// ErrModelUnavailable when it is not.
	Ready(ctx context.Context) error
	Recognize(ctx context.Context, frame Frame) ([]Observation, error)
}
