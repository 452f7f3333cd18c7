package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata: map terbuka key → value. Konsumen mendokumentasikan key yang dikenali.
type Metadata map[string]any

func (m Metadata) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (m Metadata) Int(key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64: // angka hasil decode JSON
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func (m Metadata) Bool(key string) bool {
	if m == nil {
		return false
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		return false
	}
}

// MissingKeys mengembalikan key wajib yang kosong / tidak ada.
func (m Metadata) MissingKeys(required ...string) []string {
	var out []string
	for _, k := range required {
		if m.String(k) == "" {
			out = append(out, k)
		}
	}
	return out
}
