package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Joiner writes chunk audio, in order, as one file at path.
type Joiner interface {
	Join(ctx context.Context, chunks [][]byte, path string) error
}

// FrameJoiner concatenates MP3 frame streams in process.
type FrameJoiner struct{}

func (FrameJoiner) Join(_ context.Context, chunks [][]byte, path string) error {
	return os.WriteFile(path, JoinMP3(chunks), 0o644)
}

// JoinMP3 appends MP3 streams. ID3v2 headers are dropped from every chunk but
// the first and ID3v1 trailers from every chunk but the last, so players see
// one tag block and one continuous frame sequence.
func JoinMP3(chunks [][]byte) []byte {
	size := 0
	for _, c := range chunks {
		size += len(c)
	}
	out := make([]byte, 0, size)
	for i, c := range chunks {
		if i > 0 {
			c = stripID3v2(c)
		}
		if i < len(chunks)-1 {
			c = stripID3v1(c)
		}
		out = append(out, c...)
	}
	return out
}

const (
	id3v2HeaderLen = 10
	id3v1TagLen    = 128
)

func stripID3v2(b []byte) []byte {
	if len(b) < id3v2HeaderLen || !bytes.HasPrefix(b, []byte("ID3")) {
		return b
	}
	// Tag size is a 28-bit syncsafe integer.
	n := int(b[6]&0x7f)<<21 | int(b[7]&0x7f)<<14 | int(b[8]&0x7f)<<7 | int(b[9]&0x7f)
	n += id3v2HeaderLen
	if b[5]&0x10 != 0 { // footer present
		n += id3v2HeaderLen
	}
	if n > len(b) {
		return b
	}
	return b[n:]
}

func stripID3v1(b []byte) []byte {
	if len(b) < id3v1TagLen || !bytes.HasPrefix(b[len(b)-id3v1TagLen:], []byte("TAG")) {
		return b
	}
	return b[:len(b)-id3v1TagLen]
}

// Runner runs an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, msg)
		}
		return "", fmt.Errorf("command '%s' failed: %w", name, err)
	}
	return stdout.String(), nil
}

// FFmpegJoiner stream-copies the chunks through ffmpeg's concat demuxer.
type FFmpegJoiner struct {
	Bin    string
	Runner Runner // nil = os/exec
}

func (j FFmpegJoiner) Join(ctx context.Context, chunks [][]byte, path string) error {
	dir, err := os.MkdirTemp("", "go_digest-chunks-*")
	if err != nil {
		return fmt.Errorf("create chunk dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var list strings.Builder
	for i, c := range chunks {
		part := filepath.Join(dir, fmt.Sprintf("part_%03d.mp3", i+1))
		if err := os.WriteFile(part, c, 0o600); err != nil {
			return fmt.Errorf("write chunk %d: %w", i+1, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(part, "'", `'\''`))
	}
	listPath := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0o600); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	run := j.Runner
	if run == nil {
		run = execRunner{}
	}
	if _, err := run.Run(ctx, j.Bin, "-y", "-loglevel", "error",
		"-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", path); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}
