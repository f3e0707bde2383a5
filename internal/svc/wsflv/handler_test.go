// If you are AI: This file contains unit tests for WebSocket-FLV handler.
// Tests verify the upgrade, frame layout and request errors.

package wsflv

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flvkit/internal/core/protocol/flv"
	"flvkit/internal/remux"
	"flvkit/internal/svc/media"

	"github.com/gorilla/websocket"
)

// newServer serves a directory holding clip.flv with two video tags.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	w := flv.NewWriter(&buf)
	if err := w.WriteHeader(flv.NewHeader(false, true)); err != nil {
		t.Fatal(err)
	}
	for _, tag := range []*flv.Tag{
		flv.NewTag(flv.TagTypeVideo, 100, []byte{0x17, 0x01, 0xaa}),
		flv.NewTag(flv.TagTypeVideo, 140, []byte{0x27, 0x01}),
	} {
		if err := w.WriteTag(tag); err != nil {
			t.Fatal(err)
		}
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clip.flv"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	NewService(media.NewLibrary(dir, nil, remux.Options{})).RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestWSFLVHandlerNotFound(t *testing.T) {
	server := newServer(t)
	cases := []struct {
		target string
		status int
	}{
		{"/ws/missing", http.StatusNotFound},
		{"/ws/.hidden", http.StatusBadRequest},
		{"/ws/clip?start=x", http.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, err := http.Get(server.URL + tc.target)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.target, tc.status, resp.StatusCode)
		}
	}
}

func TestWSFLVHandlerUpgrade(t *testing.T) {
	server := newServer(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/clip"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect WebSocket: %v", err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("Expected status 101, got %d", resp.StatusCode)
	}

	var frames [][]byte
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if !errors.As(err, &ce) || ce.Code != websocket.CloseNormalClosure {
				t.Fatalf("Expected normal closure, got %v", err)
			}
			break
		}
		if messageType != websocket.BinaryMessage {
			t.Errorf("Expected binary message, got %d", messageType)
		}
		frames = append(frames, data)
	}

	if len(frames) != 3 {
		t.Fatalf("Expected header and 2 tag frames, got %d", len(frames))
	}
	if len(frames[0]) != flv.HeaderSize+flv.PrevTagSizeSize || string(frames[0][:3]) != "FLV" {
		t.Errorf("First frame is not the FLV header: %x", frames[0])
	}
	// timestamps restart at zero
	want := [][]byte{
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x01, 0xaa}).Bytes(),
		flv.NewTag(flv.TagTypeVideo, 40, []byte{0x27, 0x01}).Bytes(),
	}
	for i, w := range want {
		if !bytes.Equal(frames[i+1], w) {
			t.Errorf("frame %d: got %x, want %x", i+1, frames[i+1], w)
		}
	}
}

// failingConn rejects every write.
type failingConn struct{}

// WriteMessage always fails.
func (failingConn) WriteMessage(int, []byte) error { return errors.New("gone") }

// Close does nothing.
func (failingConn) Close() error { return nil }

func TestFrameWriter(t *testing.T) {
	fw := &frameWriter{conn: failingConn{}}
	if n, err := fw.Write([]byte{1}); err == nil || n != 0 {
		t.Errorf("Expected failure, got n=%d err=%v", n, err)
	}
	if fw.frames != 0 {
		t.Errorf("Expected no frames counted, got %d", fw.frames)
	}
}
