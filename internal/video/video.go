// Package video renders frame sequences to mp4 previews with ffmpeg.
package video

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/ivlev/framemix/internal/frames"
	"github.com/ivlev/framemix/internal/system"
)

// DefaultQuality is the encoder quality knob: CRF/CQ for libx264 and nvenc, hundreds of
// kbit/s for videotoolbox.
const DefaultQuality = 23

// SequenceEncoder writes a sequence to a video file.
type SequenceEncoder interface {
	EncodeSequence(ctx context.Context, seq frames.Sequence, videoPath string, fps int, encoderName string) error
}

// FFmpegEncoder pipes raw rgb24 frames into an ffmpeg process.
type FFmpegEncoder struct {
	Binary  string // defaults to "ffmpeg"
	Quality int    // defaults to DefaultQuality
}

// EncodeSequence encodes seq at fps. An empty encoderName picks the best available H.264
// encoder.
func (e *FFmpegEncoder) EncodeSequence(ctx context.Context, seq frames.Sequence, videoPath string, fps int, encoderName string) error {
	if err := seq.Validate(); err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	if encoderName == "" {
		encoderName = system.GetBestH264Encoder()
	}

	w, h := seq.Size()
	args := e.buildFFmpegArgs(w, h, videoPath, fps, encoderName)

	binary := e.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	// frames go through stdin, no temporary files
	if err := writeRawRGB(stdin, seq); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("write raw error: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, out.String())
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(width, height int, videoPath string, fps int, encoderName string) []string {
	quality := e.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.Itoa(fps),
		"-i", "-",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	switch encoderName {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", strconv.Itoa(quality))
	default: // libx264
		args = append(args, "-crf", strconv.Itoa(quality), "-preset", "medium")
	}

	return append(args, videoPath)
}

// writeRawRGB streams the packed pixels of every frame; Frame.Pix is already rgb24.
func writeRawRGB(w io.Writer, seq frames.Sequence) error {
	bw := bufio.NewWriter(w)
	for _, f := range seq {
		if _, err := bw.Write(f.Pix); err != nil {
			return err
		}
	}
	return bw.Flush()
}
