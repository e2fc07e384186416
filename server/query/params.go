package query

import (
	"strconv"
	"strings"
)

// Params is the untyped query-string parameter set a listing endpoint
// receives. Values are raw strings, lists are comma-joined.
type Params map[string]string

func (p Params) Int(key string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(p[key]))
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p Params) Float(key string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p[key]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntList parses a comma-joined id list, dropping entries that fail to parse.
// An empty result means the filter is not applied.
func (p Params) IntList(key string) []int32 {
	raw := p[key]
	if raw == "" {
		return nil
	}

	var ids []int32
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, int32(id))
	}
	return ids
}

// StringList parses a comma-joined list, dropping empty entries.
func (p Params) StringList(key string) []string {
	raw := p[key]
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
