// Package format renders CLI command output. JSON is the default; EDN is
// kept for scripting setups that prefer it.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return writeJSON(w, v, pretty)
	case "edn":
		return writeEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// writeEDN emits an EDN subset (maps, vectors, strings, numbers, booleans,
// nil) sufficient for this client's payloads. Structs are routed through
// their JSON encoding so field naming stays consistent across formats.
func writeEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}
	var sb strings.Builder
	appendEDN(&sb, x, 0, pretty)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

func appendEDN(sb *strings.Builder, v any, depth int, pretty bool) {
	switch t := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(t))
	case string:
		sb.WriteString(strconv.Quote(t))
	case float64:
		if float64(int64(t)) == t {
			sb.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case []any:
		appendEDNSeq(sb, "[", "]", len(t), depth, pretty, func(i int) {
			appendEDN(sb, t[i], depth+1, pretty)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		appendEDNSeq(sb, "{", "}", len(keys), depth, pretty, func(i int) {
			k := strings.ReplaceAll(strings.TrimSpace(keys[i]), " ", "-")
			sb.WriteString(":" + k + " ")
			appendEDN(sb, t[keys[i]], depth+1, pretty)
		})
	default:
		sb.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func appendEDNSeq(sb *strings.Builder, open, close string, n, depth int, pretty bool, elem func(i int)) {
	sb.WriteString(open)
	for i := 0; i < n; i++ {
		if pretty {
			sb.WriteString("\n" + strings.Repeat("  ", depth+1))
		} else if i > 0 {
			sb.WriteByte(' ')
		}
		elem(i)
	}
	if pretty && n > 0 {
		sb.WriteString("\n" + strings.Repeat("  ", depth))
	}
	sb.WriteString(close)
}
