package media

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DurationProber reads the playback length of a local media file in seconds.
type DurationProber interface {
	Duration(path string) (float64, error)
}

type FFProbe struct{}

func NewFFProbe() *FFProbe {
	return &FFProbe{}
}

func (p *FFProbe) Duration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe media file")
	}
	return ParseDuration(out)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ParseDuration extracts format.duration from ffprobe's JSON output.
func ParseDuration(probeJSON string) (float64, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(probeJSON), &out); err != nil {
		return 0, errors.Wrap(err, "invalid probe output")
	}
	if out.Format.Duration == "" {
		return 0, errors.New("probe output has no duration")
	}
	d, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", out.Format.Duration)
	}
	return d, nil
}
