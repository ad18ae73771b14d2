// Package location replays newline-delimited coordinate samples onto a single
// marker position and fans marker updates out to subscribers.
package location

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	"github.com/tidwall/gjson"
)

// Point is a marker position.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the point for text fallbacks.
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// Sample is one non-blank payload line scheduled for replay.
type Sample struct {
	// Index is the zero-based position among non-blank lines and decides
	// when the sample is shown.
	Index int
	// Line is the one-based line number in the payload.
	Line  int
	Point Point
	// Err is set when the line is not a usable sample.
	Err error
}

// ParseSamples splits payload on newlines, skips blank lines and parses the
// rest. Malformed lines keep their slot and carry Err.
func ParseSamples(payload []byte) []Sample {
	lines := strings.Split(string(payload), "\n")
	samples := make([]Sample, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		point, err := ParseSample(line)
		if err != nil {
			err = apperrors.WithMetadata(apperrors.CodeLocationSampleInvalid,
				fmt.Sprintf("location sample on line %d: %v", i+1, err),
				map[string]string{"Line": strconv.Itoa(i + 1)})
		}
		samples = append(samples, Sample{
			Index: len(samples),
			Line:  i + 1,
			Point: point,
			Err:   err,
		})
	}
	return samples
}

// ParseSample reads one {"lat": n, "lon": n} object.
func ParseSample(line string) (Point, error) {
	if !gjson.Valid(line) {
		return Point{}, fmt.Errorf("invalid json")
	}
	if !gjson.Parse(line).IsObject() {
		return Point{}, fmt.Errorf("expected object")
	}
	fields := gjson.GetMany(line, "lat", "lon")
	lat, lon := fields[0], fields[1]
	if lat.Type != gjson.Number {
		return Point{}, fmt.Errorf("lat must be a number")
	}
	if lon.Type != gjson.Number {
		return Point{}, fmt.Errorf("lon must be a number")
	}
	return Point{Lat: lat.Float(), Lng: lon.Float()}, nil
}
