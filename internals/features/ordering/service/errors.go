package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrStaleView: item yang di-drag client tidak lagi berada di from_index.
var ErrStaleView = errors.New("ordering: list changed since it was loaded")

// InvalidIndexError menandakan bug pemanggil (index di luar 0..len-1).
type InvalidIndexError struct {
	Index int
	Len   int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("ordering: index %d out of range [0,%d)", e.Index, e.Len)
}

// PersistError: sebagian (atau semua) update posisi gagal.
// Item yang sudah tertulis tetap tertulis, tidak ada rollback.
type PersistError struct {
	Failed []string
	Causes map[string]error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("ordering: failed to persist %d position(s): %s",
		len(e.Failed), strings.Join(e.Failed, ", "))
}

// Unwrap mengembalikan penyebab, urut id, supaya errors.Is/As bisa menembus.
func (e *PersistError) Unwrap() []error {
	if len(e.Causes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(e.Causes))
	for id := range e.Causes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]error, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.Causes[id])
	}
	return out
}

func (e *PersistError) Contains(id string) bool {
	for _, f := range e.Failed {
		if f == id {
			return true
		}
	}
	return false
}
