package lambda

import (
	"encoding/json"
	"fmt"
	"math"
)

// Params is the open-ended parameter object an action is invoked with
type Params map[string]interface{}

// Truthy reports whether v counts as set. nil, false, zero numbers, NaN and
// the empty string are unset; everything else, including empty maps and
// slices, is set.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case uint:
		return val != 0
	case uint32:
		return val != 0
	case uint64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val != ""
		}
		return Truthy(f)
	default:
		return true
	}
}

// Truthy reports whether the value stored under key is set
func (p Params) Truthy(key string) bool {
	return Truthy(p[key])
}

// ValueOr returns the value under key, or fallback when it is unset
func (p Params) ValueOr(key string, fallback interface{}) interface{} {
	if v := p[key]; Truthy(v) {
		return v
	}
	return fallback
}

// StringOr returns the value under key as a string, or fallback when it is unset
func (p Params) StringOr(key, fallback string) string {
	v := p[key]
	if !Truthy(v) {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a shallow copy of p
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Without returns a shallow copy of p with key removed. p is left untouched.
func (p Params) Without(key string) Params {
	out := p.Clone()
	delete(out, key)
	return out
}
