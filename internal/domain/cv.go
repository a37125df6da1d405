// Package domain holds the CV record and the events raised around it.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// AttrID is the partition key attribute of a CV record.
	AttrID = "id"
	// AttrViews is the view counter attribute.
	AttrViews = "views"
)

// CV is a schema-free portfolio record. Only "id" and "views" carry meaning
// for this service; every other attribute is passed through untouched.
type CV map[string]any

// ID returns the record identifier, or "" when it is missing or not a string.
func (c CV) ID() string {
	id, _ := c[AttrID].(string)
	return id
}

// Views returns the current view counter. A missing attribute counts as zero.
// Present values are converted like an integer cast: integral numbers and
// numeric strings are accepted, fractions are truncated toward zero.
func (c CV) Views() (int, error) {
	raw, ok := c[AttrViews]
	if !ok {
		return 0, nil
	}
	return toInt(raw)
}

// WithViews returns a shallow copy of the record with the counter replaced.
func (c CV) WithViews(views int) CV {
	out := make(CV, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[AttrViews] = views
	return out
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid views value %q: %w", n.String(), err)
		}
		return floatToInt(f)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("invalid views value %q: %w", n, err)
		}
		return i, nil
	case nil:
		return 0, fmt.Errorf("invalid views value: null")
	default:
		return 0, fmt.Errorf("invalid views value of type %T", v)
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid views value %v", f)
	}
	return int(f), nil
}
