package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// sseWriter frames payloads as server-sent events. One provider chunk maps
// to exactly one frame; frames are flushed immediately so the client
// renders incrementally.
type sseWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

var errStreamingUnsupported = errors.New("response writer does not support streaming")

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	f, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &sseWriter{w: w, f: f}, nil
}

// WriteChunk emits one `data: {JSON}\n\n` frame.
func (s *sseWriter) WriteChunk(chunk StreamChunk) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("encoding stream chunk: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}

// WriteDone emits the terminal `data: [DONE]\n\n` sentinel. Its absence on
// close tells the client the stream was truncated by a failure.
func (s *sseWriter) WriteDone() error {
	if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}
