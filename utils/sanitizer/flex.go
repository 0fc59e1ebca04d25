package sanitizer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// flexString decodes any JSON scalar into text. Objects, arrays, booleans
// and null leave it absent.
type flexString struct {
	Value string
	Valid bool
}

func (f *flexString) UnmarshalJSON(data []byte) error {
	*f = flexString{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			f.Value, f.Valid = s, true
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f.Value, f.Valid = string(data), true
	}
	return nil
}

// flexInt decodes JSON numbers and numeric strings. Anything else is absent.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		f.Value, f.Valid = clampToInt(float64(n)), true
		return nil
	}
	if x, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
		f.Value, f.Valid = clampToInt(math.Trunc(x)), true
	}
	return nil
}

// flexIcons decodes an object of icon URLs keyed by size. Any other JSON
// value, including the empty array PHP emits for an empty map, leaves it
// absent. Non-scalar entries are skipped.
type flexIcons map[string]string

func (f *flexIcons) UnmarshalJSON(data []byte) error {
	*f = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	icons := make(flexIcons, len(raw))
	for k, v := range raw {
		var s flexString
		if err := json.Unmarshal(v, &s); err == nil && s.Valid {
			icons[k] = s.Value
		}
	}
	*f = icons
	return nil
}

func clampToInt(x float64) int {
	if x > math.MaxInt32 {
		return math.MaxInt32
	}
	if x < math.MinInt32 {
		return math.MinInt32
	}
	return int(x)
}

// rawPlugin is the tolerant decoding target for one upstream listing.
type rawPlugin struct {
	Slug             flexString `json:"slug"`
	Name             flexString `json:"name"`
	Version          flexString `json:"version"`
	Author           flexString `json:"author"`
	AuthorProfile    flexString `json:"author_profile"`
	Requires         flexString `json:"requires"`
	Tested           flexString `json:"tested"`
	RequiresPHP      flexString `json:"requires_php"`
	LastUpdated      flexString `json:"last_updated"`
	Added            flexString `json:"added"`
	Homepage         flexString `json:"homepage"`
	DownloadLink     flexString `json:"download_link"`
	ShortDescription flexString `json:"short_description"`
	Rating           flexInt    `json:"rating"`
	NumRatings       flexInt    `json:"num_ratings"`
	ActiveInstalls   flexInt    `json:"active_installs"`
	Downloaded       flexInt    `json:"downloaded"`
	Icons            flexIcons  `json:"icons"`
}

type rawInfo struct {
	Results flexInt `json:"results"`
}
