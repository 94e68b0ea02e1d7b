package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ToString converts a cell value to its string form. Missing values (nil) become "",
// never a sentinel such as "<nil>". Floats are printed without exponent or trailing zeros,
// so a numeric serial 12345678 stays "12345678".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
