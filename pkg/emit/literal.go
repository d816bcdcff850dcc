package emit

import (
	"fmt"
	"strconv"
)

// FormatLiteral renders a literal value in DSL and TypeScript syntax: null,
// a double-quoted string, a number or a boolean.
func FormatLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
