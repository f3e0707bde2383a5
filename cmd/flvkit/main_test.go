// If you are AI: This file tests the command helpers: exit codes, config overrides and event printing.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/amf0"
	"flvkit/internal/core/protocol/flv"
)

func TestExitCode(t *testing.T) {
	require.Equal(t, int(flv.CodeNoFLV), exitCode(fmt.Errorf("x: %w", flv.ErrNotFLV)))
	require.Equal(t, int(flv.CodeEOF), exitCode(flv.ErrEOF))
	require.Equal(t, int(flv.CodeState), exitCode(flv.ErrState))
	require.Equal(t, exitFailure, exitCode(errors.New("invalid config")))
	require.NoError(t, exit(nil))
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig("", func(c *config.Config) { c.Server.HTTPPort = 9999 })
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Server.HTTPPort)

	_, err = loadConfig("", func(c *config.Config) { c.Server.HTTPPort = c.Server.HealthPort })
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "flvkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remux:\n  drop_audio: true\n"), 0o600))
	cfg, err = loadConfig(path, nil)
	require.NoError(t, err)
	require.True(t, cfg.Remux.DropAudio)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestEventPrinter(t *testing.T) {
	meta := amf0.NewObject()
	meta.Add("width", amf0.NewNumber(640))
	name, err := amf0.Marshal(amf0.String("onMetaData"))
	require.NoError(t, err)
	data, err := amf0.Marshal(meta)
	require.NoError(t, err)

	var file bytes.Buffer
	w := flv.NewWriter(&file)
	require.NoError(t, w.WriteHeader(flv.NewHeader(false, true)))
	require.NoError(t, w.WriteTag(flv.NewTag(flv.TagTypeScript, 0, append(name, data...))))
	require.NoError(t, w.WriteTag(flv.NewTag(flv.TagTypeVideo, 40, []byte{0x17, 0x01})))
	path := filepath.Join(t.TempDir(), "clip.flv")
	require.NoError(t, os.WriteFile(path, file.Bytes(), 0o600))

	var out bytes.Buffer
	require.NoError(t, flv.Parse(path, eventPrinter(&out, false)))
	want := fmt.Sprintf(`header version=1 audio=false video=true offset=9
tag type=metadata size=%d time=0 stream=0
%s
%s
size %d
tag type=video size=2 time=40 stream=0
  video frame=1 codec=7 keyframe=true
size 13
end
`, len(name)+len(data), amf0.Sdump(amf0.String("onMetaData")), amf0.Sdump(meta), 11+len(name)+len(data))
	require.Equal(t, want, out.String())
}

func TestIsTerminal(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))
}
