package interpreter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"crispy/interpreter-go/pkg/runtime"
)

// valueToString renders a value the way println shows it. Strings are raw
// at the top level and quoted inside containers.
func valueToString(val runtime.Value) string {
	var sb strings.Builder
	writeValue(&sb, val, false, make(map[runtime.Value]bool))
	return sb.String()
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// writeValue tracks the containers currently being printed in active so
// that a container reachable from itself prints as [...] or {...}.
func writeValue(sb *strings.Builder, val runtime.Value, nested bool, active map[runtime.Value]bool) {
	switch v := val.(type) {
	case nil, runtime.NilValue:
		sb.WriteString("nil")
	case runtime.BoolValue:
		sb.WriteString(strconv.FormatBool(v.Val))
	case runtime.NumberValue:
		sb.WriteString(formatNumber(v.Val))
	case runtime.StringValue:
		if nested {
			sb.WriteString(`"` + v.Val + `"`)
		} else {
			sb.WriteString(v.Val)
		}
	case *runtime.ListValue:
		if active[v] {
			sb.WriteString("[...]")
			return
		}
		active[v] = true
		sb.WriteString("[")
		for idx, el := range v.Elements {
			if idx > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, el, true, active)
		}
		sb.WriteString("]")
		delete(active, v)
	case *runtime.DictionaryValue:
		if active[v] {
			sb.WriteString("{...}")
			return
		}
		active[v] = true
		keys := make([]string, 0, len(v.Entries))
		for k := range v.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("{")
		for idx, k := range keys {
			if idx > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(`"` + k + `": `)
			writeValue(sb, v.Entries[k], true, active)
		}
		sb.WriteString("}")
		delete(active, v)
	case *runtime.FunctionValue:
		fmt.Fprintf(sb, "<function (%s)>", strings.Join(v.Declaration.ParamNames(), ", "))
	case *runtime.NativeFunctionValue:
		fmt.Fprintf(sb, "<builtin %s>", v.Name)
	default:
		fmt.Fprintf(sb, "<%s>", val.Kind())
	}
}
