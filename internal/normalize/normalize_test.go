package normalize

import (
	"testing"
	"time"
)

// ========================================
// ToAmount Tests
// ========================================

func TestToAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{"dotted thousands", "Rp 1.234.567", 1234567, true},
		{"comma thousands with dotted marker", "Rp.1,234,567", 1234567, true},
		{"lowercase marker", "rp 2.000.000", 2000000, true},
		{"no space after marker", "Rp1.950.000", 1950000, true},
		{"marker inside sentence", "Harga hari ini Rp 1.234.000 per gram", 1234000, true},
		{"bare digits", "1234567", 1234567, true},
		{"bare grouped digits", "1.234.567", 1234567, true},
		{"empty", "", 0, false},
		{"letters only", "abc", 0, false},
		{"marker without number", "Rp -", 0, false},
		{"separators only", "Rp ...", 0, false},
		{"digits with trailing text and no marker", "1234 IDR", 0, false},
		{"negative", "-5", 0, false},
		{"overflow", "Rp 99.999.999.999.999.999.999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToAmount(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ToAmount(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ToAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ========================================
// ToDate Tests
// ========================================

func TestToDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string // RFC 3339, empty when absent
	}{
		{"weekday prefix", "Senin, 12 Mei 2025", "2025-05-12T00:00:00+07:00"},
		{"single digit day", "1 Januari 2024", "2024-01-01T00:00:00+07:00"},
		{"uppercase month", "17 AGUSTUS 2025", "2025-08-17T00:00:00+07:00"},
		{"mixed case month", "31 Desember 2023", "2023-12-31T00:00:00+07:00"},
		{"surrounding text", "Update: 5 Maret 2025 pukul 09.00 WIB", "2025-03-05T00:00:00+07:00"},
		{"leap day", "29 Februari 2024", "2024-02-29T00:00:00+07:00"},
		{"unknown month", "12 Blah 2025", ""},
		{"english month", "12 May 2025", ""},
		{"empty", "", ""},
		{"no date", "harga hari ini", ""},
		{"impossible day", "31 Februari 2025", ""},
		{"non leap day", "29 Februari 2025", ""},
		{"day zero", "0 Mei 2025", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDate(tt.input)
			if tt.want == "" {
				if ok {
					t.Errorf("ToDate(%q) = %v, want absent", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ToDate(%q) absent, want %s", tt.input, tt.want)
			}
			if s := got.Format(time.RFC3339); s != tt.want {
				t.Errorf("ToDate(%q) = %s, want %s", tt.input, s, tt.want)
			}
		})
	}
}

func TestToDate_AnchoredToJakarta(t *testing.T) {
	got, ok := ToDate("12 Mei 2025")
	if !ok {
		t.Fatal("expected a date")
	}
	_, offset := got.Zone()
	if offset != 7*3600 {
		t.Errorf("zone offset = %d, want %d", offset, 7*3600)
	}
	if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("clock = %02d:%02d:%02d, want midnight", h, m, s)
	}
	if want := time.Date(2025, 5, 11, 17, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("instant = %v, want %v", got.UTC(), want)
	}
}

func TestIndonesianMonths_Complete(t *testing.T) {
	if len(indonesianMonths) != 12 {
		t.Fatalf("month table has %d entries, want 12", len(indonesianMonths))
	}
	seen := map[time.Month]bool{}
	for _, m := range indonesianMonths {
		seen[m] = true
	}
	for m := time.January; m <= time.December; m++ {
		if !seen[m] {
			t.Errorf("month %v missing from table", m)
		}
	}
}
