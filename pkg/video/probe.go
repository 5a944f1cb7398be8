package video

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoVideoStream = errors.New("no video stream")

// StreamInfo describes the first video stream of a container.
type StreamInfo struct {
	Codec     string
	Width     int
	Height    int
	FrameRate float64
	// Rotation in degrees as tagged by the container. Width and Height are
	// already swapped for quarter turns, matching what ffmpeg decodes with
	// autorotation on.
	Rotation int
}

// Probe asks ffprobe for the stream layout of path.
func Probe(ctx context.Context, path string) (*StreamInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "v",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, "ffprobe %q", path)
	}

	return ParseProbe(out)
}

type ffprobeOutput struct {
	Streams []struct {
		CodecName    string         `json:"codec_name"`
		CodecType    string         `json:"codec_type"`
		Width        int            `json:"width"`
		Height       int            `json:"height"`
		AvgFrameRate string         `json:"avg_frame_rate"`
		RFrameRate   string         `json:"r_frame_rate"`
		Disposition  map[string]int    `json:"disposition"`
		Tags         map[string]string `json:"tags"`
		SideDataList []struct {
			SideDataType string  `json:"side_data_type"`
			Rotation     float64 `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// ParseProbe extracts the first real video stream from ffprobe JSON. Cover
// art attachments are skipped.
func ParseProbe(data []byte) (*StreamInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse ffprobe JSON")
	}

	for _, s := range raw.Streams {
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, errors.Errorf("invalid frame size %dx%d", s.Width, s.Height)
		}

		fps := parseRate(s.AvgFrameRate)
		if fps == 0 {
			fps = parseRate(s.RFrameRate)
		}

		info := &StreamInfo{
			Codec:     s.CodecName,
			Width:     s.Width,
			Height:    s.Height,
			FrameRate: fps,
		}

		// newer ffprobe reports a display matrix, older builds a rotate tag
		for _, sd := range s.SideDataList {
			if sd.SideDataType == "Display Matrix" {
				info.Rotation = int(sd.Rotation)
			}
		}
		if info.Rotation == 0 && s.Tags["rotate"] != "" {
			info.Rotation, _ = strconv.Atoi(s.Tags["rotate"])
		}

		if r := info.Rotation % 180; r == 90 || r == -90 {
			info.Width, info.Height = info.Height, info.Width
		}

		return info, nil
	}

	return nil, ErrNoVideoStream
}

// parseRate reads ffprobe rationals such as "30000/1001". Unknown rates
// ("0/0") come back as zero.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
