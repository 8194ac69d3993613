package system

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the number of physical cores, falling back to runtime.NumCPU
// when the host does not report them.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ResolveWorkers returns n when positive and DefaultWorkers otherwise.
func ResolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return DefaultWorkers()
}

// GetBestH264Encoder picks a hardware encoder when ffmpeg lists one, libx264 otherwise.
func GetBestH264Encoder() string {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "libx264"
	}

	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}

	// VideoToolbox first (macOS), then NVENC
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}
