package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so json tags decide
// the field names; object keys become kebab-case keywords (createdAt -> :created-at).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var sb strings.Builder
	e := ednWriter{sb: &sb, pretty: pretty}
	e.value(x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednWriter struct {
	sb     *strings.Builder
	pretty bool
}

func (e ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.sb.WriteString("nil")
	case bool:
		e.sb.WriteString(strconv.FormatBool(t))
	case string:
		e.sb.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			e.sb.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.sb.WriteByte('[')
		for i, it := range t {
			e.sep(i, depth+1)
			e.value(it, depth+1)
		}
		e.close(len(t), depth)
		e.sb.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.sb.WriteByte('{')
		for i, k := range keys {
			e.sep(i, depth+1)
			e.sb.WriteString(Keyword(k))
			e.sb.WriteByte(' ')
			e.value(t[k], depth+1)
		}
		e.close(len(keys), depth)
		e.sb.WriteByte('}')
	default:
		e.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// sep writes what goes before the i-th element of a collection.
func (e ednWriter) sep(i, depth int) {
	switch {
	case e.pretty:
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		e.sb.WriteByte(' ')
	}
}

func (e ednWriter) close(n, depth int) {
	if e.pretty && n > 0 {
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat("  ", depth))
	}
}

// Keyword turns a JSON field name into an EDN keyword.
func Keyword(s string) string {
	var b strings.Builder
	b.WriteByte(':')
	prevLower := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return b.String()
}
