package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// Transcoder converts raw video bytes to a web-efficient format. It is a
// synchronous external capability: bytes in, bytes out, or an error.
type Transcoder interface {
	Transcode(ctx context.Context, data []byte, sourceType string) ([]byte, string, error)
}

// FFmpeg shells out to ffmpeg and produces VP9/Opus WebM with a capped
// width and reduced bitrate. All temp files live in a per-call directory
// removed on every exit path.
type FFmpeg struct {
	bin string
	log *zap.SugaredLogger
}

func NewFFmpeg(bin string, log *zap.SugaredLogger) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin, log: log}
}

func (f *FFmpeg) Transcode(ctx context.Context, data []byte, sourceType string) ([]byte, string, error) {
	dir, err := os.MkdirTemp("", "transcode-*")
	if err != nil {
		return nil, "", fmt.Errorf("transcode tmpdir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out.webm")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, "", fmt.Errorf("transcode write input: %w", err)
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", in,
		"-c:v", "libvpx-vp9",
		"-b:v", "1M",
		"-crf", "33",
		"-vf", "scale='min(1280,iw)':-2",
		"-c:a", "libopus",
		"-y", out,
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		f.log.Errorw("ffmpeg failed", "source_type", sourceType, "stderr", stderr.String())
		return nil, "", fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	converted, err := os.ReadFile(out)
	if err != nil {
		return nil, "", fmt.Errorf("transcode read output: %w", err)
	}
	return converted, "video/webm", nil
}
