package godos

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/reoring/godos/codec"
)

var (
	decimalString = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	integerString = regexp.MustCompile(`^-?\d+$`)
)

// numberLiteral is satisfied by json.Number from both encoding/json and
// goccy/go-json.
type numberLiteral interface {
	Float64() (float64, error)
	Int64() (int64, error)
	String() string
}

// isNumeric reports whether v is a numeric literal. bool never is.
func isNumeric(v any) bool {
	switch x := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case numberLiteral:
		_, err := x.Float64()
		return err == nil
	}
	return false
}

// isIntegral reports whether v is a numeric literal without a fractional part.
func isIntegral(v any) bool {
	switch x := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		f := float64(x)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	case float64:
		return !math.IsInf(x, 0) && x == math.Trunc(x)
	case numberLiteral:
		_, err := x.Int64()
		return err == nil
	}
	return false
}

// typeMatches applies the per-kind acceptance rules. Input is lenient about
// numbers carried in strings, "," thousands separators included; output is not.
func typeMatches(k Kind, v any, dir direction) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		if s, ok := v.(string); ok {
			return dir == inbound && decimalString.MatchString(strings.ReplaceAll(s, ",", ""))
		}
		return isNumeric(v)
	case KindInteger:
		if s, ok := v.(string); ok {
			return dir == inbound && integerString.MatchString(strings.ReplaceAll(s, ",", ""))
		}
		return isIntegral(v)
	case KindNumeric:
		if _, ok := v.(string); ok {
			return true
		}
		return isNumeric(v)
	case KindEnum:
		return true
	case KindDateTime:
		switch x := v.(type) {
		case time.Time:
			return true
		case string:
			if dir == outbound {
				return true
			}
			_, err := codec.ParseDateTime(x)
			return err == nil
		}
		return false
	case KindObject:
		_, ok := v.(map[string]any)
		return ok
	case KindArray:
		_, ok := asSlice(v)
		return ok
	}
	return false
}
