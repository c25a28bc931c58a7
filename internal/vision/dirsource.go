package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// stopSentinel ends the stream when a capture process drops it into the
// spool directory.
const stopSentinel = ".stop"

// DirSource pulls frames from a spool directory that an external capture
// process writes image files into.  Next picks the oldest file, decodes it,
// and removes it, so the directory acts as a consume-once queue.
type DirSource struct {
	dir  string
	poll time.Duration
}

// NewDirSource fails when the directory does not exist — the session must
// not start without a working frame source.
func NewDirSource(dir string, poll time.Duration) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("frames dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("frames dir %s: not a directory", dir)
	}
	if poll <= 0 {
		poll = 200 * time.Millisecond
	}
	return &DirSource{dir: dir, poll: poll}, nil
}

func (s *DirSource) Next(ctx context.Context) (Frame, error) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		path, stopped, err := s.oldestFrame()
		if err != nil {
			return Frame{}, err
		}
		if stopped {
			return Frame{}, ErrEndOfStream
		}
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return Frame{}, fmt.Errorf("read frame %s: %w", path, err)
			}
			if err := os.Remove(path); err != nil {
				return Frame{}, fmt.Errorf("consume frame %s: %w", path, err)
			}

			img, err := DecodeImage(data)
			if err != nil {
				// A torn write from the capture process; skip the file.
				continue
			}
			return Frame{Image: img, Source: path}, nil
		}

		select {
		case <-ctx.Done():
			return Frame{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *DirSource) Close() error { return nil }

// oldestFrame returns the next frame file by modification time, or
// stopped=true when the sentinel is present or the directory vanished.
func (s *DirSource) oldestFrame() (path string, stopped bool, err error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return "", true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("scan frames dir: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var frames []candidate

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == stopSentinel {
			return "", true, nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".jpg", ".jpeg", ".png", ".bmp":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		frames = append(frames, candidate{path: filepath.Join(s.dir, name), mod: info.ModTime()})
	}

	if len(frames) == 0 {
		return "", false, nil
	}

	sort.Slice(frames, func(i, j int) bool {
		if !frames[i].mod.Equal(frames[j].mod) {
			return frames[i].mod.Before(frames[j].mod)
		}
		return frames[i].path < frames[j].path
	})
	return frames[0].path, false, nil
}
