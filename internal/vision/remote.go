package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultRecognizerURL = "http://localhost:8200"

// RemoteRecognizer talks to the recognition sidecar, the process that owns
// the trained model and the face detector.  One multipart POST per frame;
// the sidecar answers with every detected face, its best label, and the
// dissimilarity for that label.
type RemoteRecognizer struct {
	baseURL string
	client  *http.Client
	maxSize int // frame downscale cap before upload
}

func NewRemoteRecognizer(baseURL string, maxSize int) *RemoteRecognizer {
	if baseURL == "" {
		baseURL = defaultRecognizerURL
	}
	return &RemoteRecognizer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		maxSize: maxSize,
	}
}

type recognizeResponse struct {
	Faces []struct {
		Box   Region  `json:"box"`
		Label int64   `json:"label"`
		Score float64 `json:"score"`
	} `json:"faces"`
}

type sidecarError struct {
	Error string `json:"error"`
}

func (r *RemoteRecognizer) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/v1/model", nil)
	if err != nil {
		return fmt.Errorf("recognizer ready request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("recognizer unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusServiceUnavailable:
		return ErrModelUnavailable
	default:
		return fmt.Errorf("recognizer ready: unexpected status %d", resp.StatusCode)
	}
}

func (r *RemoteRecognizer) Recognize(ctx context.Context, frame Frame) ([]Observation, error) {
	data, err := EncodeJPEG(frame.Image, r.maxSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("frame", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write frame data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/recognize", &buf)
	if err != nil {
		return nil, fmt.Errorf("recognize request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognize post: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("recognize read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusServiceUnavailable:
		return nil, ErrModelUnavailable
	default:
		var se sidecarError
		if json.Unmarshal(body, &se) == nil && se.Error != "" {
			return nil, fmt.Errorf("recognize: sidecar error: %s", se.Error)
		}
		return nil, fmt.Errorf("recognize: unexpected status %d", resp.StatusCode)
	}

	var rr recognizeResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, fmt.Errorf("recognize decode: %w", err)
	}

	obs := make([]Observation, 0, len(rr.Faces))
	for _, f := range rr.Faces {
		obs = append(obs, Observation{Region: f.Box, Label: f.Label, Score: f.Score})
	}
	return obs, nil
}
