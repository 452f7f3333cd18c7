package model

import "strings"

// OrderedItem adalah satu entri dalam daftar berurutan (quick service, content block, dst).
// Position naik = urutan tampil. Payload tidak dipakai untuk logika urutan.
type OrderedItem struct {
	ID       string   `json:"id"`
	Position int      `json:"position"`
	Payload  Metadata `json:"payload,omitempty"`
}

// ListRef menunjuk ke satu daftar yang tersimpan di tabel.
type ListRef struct {
	Name             string // label untuk log & metrics, mis. "quick_services"
	Table            string
	IDColumn         string
	PositionColumn   string
	ScopeColumn      string // opsional, mis. content_block_page
	Scope            any
	SoftDeleteColumn string // opsional, baris dengan kolom ini NOT NULL diabaikan
	LabelColumn      string // opsional, dibaca ke Payload["label"]
	TouchColumn      string // opsional, di-set NOW saat posisi berubah
}

func (l ListRef) Scoped() bool {
	return strings.TrimSpace(l.ScopeColumn) != ""
}

// Key dipakai sebagai label metrics/log.
func (l ListRef) Key() string {
	name := l.Name
	if name == "" {
		name = l.Table
	}
	return name
}

// MaxPosition mengembalikan posisi terbesar (0 untuk daftar kosong).
func MaxPosition(items []OrderedItem) int {
	top := 0
	for _, it := range items {
		if it.Position > top {
			top = it.Position
		}
	}
	return top
}

// NextPosition = max(position)+1, atau 1 jika daftar kosong.
func NextPosition(items []OrderedItem) int {
	return MaxPosition(items) + 1
}

// IDs mengembalikan id sesuai urutan slice.
func IDs(items []OrderedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// Clone menyalin slice (payload tetap dibagi, dianggap read-only).
func Clone(items []OrderedItem) []OrderedItem {
	if items == nil {
		return nil
	}
	out := make([]OrderedItem, len(items))
	copy(out, items)
	return out
}
