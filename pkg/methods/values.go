package methods

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AsInt converts a decoded argument or response value into an int.
// Request arguments are usually Go ints while decoded JSON yields float64
// or json.Number, and form-style arguments arrive as strings.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// AsBool converts a decoded value into a bool. Strings "1" and "true" are true.
func AsBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true":
			return true, true
		case "0", "false", "":
			return false, true
		}
	}
	if i, ok := AsInt(v); ok {
		return i != 0, true
	}
	return false, false
}
