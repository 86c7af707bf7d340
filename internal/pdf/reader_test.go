package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestReader_ReadPages_Errors(t *testing.T) {
	reader := NewReader(1024 * 1024)

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"non-existent file", "/non/existent/file.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := reader.ReadPages(tt.path)
			if err == nil {
				t.Fatalf("expected error but got none")
			}
			if pages != nil {
				t.Errorf("expected nil pages on error")
			}
		})
	}
}

func TestReader_ReadPages_SizeLimit(t *testing.T) {
	reader := NewReader(4)

	tempDir, err := os.MkdirTemp("", "ordersheet_reader_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	bigFile := filepath.Join(tempDir, "big.pdf")
	if err := os.WriteFile(bigFile, []byte("%PDF-1.4 oversized"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := reader.ReadPages(bigFile); err == nil {
		t.Fatalf("expected size limit error but got none")
	}
}

func run(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

func TestAssembleWords(t *testing.T) {
	const height = 792.0

	tests := []struct {
		name  string
		runs  []pdf.Text
		wants []string
	}{
		{
			name: "adjacent runs merge into one word",
			runs: []pdf.Text{
				run("Sup", 10, 700, 15, 10),
				run("plier", 25, 700, 20, 10),
			},
			wants: []string{"Supplier"},
		},
		{
			name: "wide gap starts a new word",
			runs: []pdf.Text{
				run("Supplier", 10, 700, 40, 10),
				run("Name", 70, 700, 25, 10),
			},
			wants: []string{"Supplier", "Name"},
		},
		{
			name: "different baselines never merge",
			runs: []pdf.Text{
				run("001", 100, 700, 15, 10),
				run("002", 115, 650, 15, 10),
			},
			wants: []string{"001", "002"},
		},
		{
			name: "small baseline drift still merges",
			runs: []pdf.Text{
				run("68101", 10, 700, 25, 10),
				run("-0E120-00", 35, 701, 45, 10),
			},
			wants: []string{"68101-0E120-00"},
		},
		{
			name: "whitespace-only runs are dropped",
			runs: []pdf.Text{
				run(" ", 10, 700, 3, 10),
				run("T2", 20, 700, 10, 10),
			},
			wants: []string{"T2"},
		},
		{
			name:  "no runs",
			runs:  nil,
			wants: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := assembleWords(tt.runs, height)
			if len(words) != len(tt.wants) {
				t.Fatalf("expected %d words but got %d: %+v", len(tt.wants), len(words), words)
			}
			for i, want := range tt.wants {
				if words[i].Text != want {
					t.Errorf("word %d: expected %q but got %q", i, want, words[i].Text)
				}
			}
		})
	}
}

func TestAssembleWords_ReadingOrder(t *testing.T) {
	// Runs arrive in arbitrary order; words must come out top-down then
	// left-to-right.
	runs := []pdf.Text{
		run("002", 200, 650, 15, 10),
		run("Order", 10, 700, 25, 10),
		run("001", 100, 650, 15, 10),
		run("Number", 45, 700, 35, 10),
	}

	words := assembleWords(runs, 792)
	got := make([]string, len(words))
	for i, w := range words {
		got[i] = w.Text
	}

	want := []string{"Order", "Number", "001", "002"}
	if len(got) != len(want) {
		t.Fatalf("expected %d words but got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q but got %q", i, want[i], got[i])
		}
	}
}

func TestAssembleWords_CoordinateFlip(t *testing.T) {
	// PDF y grows upward; extraction coordinates grow downward from the
	// top of the page.
	words := assembleWords([]pdf.Text{run("T2", 10, 700, 10, 12)}, 792)
	if len(words) != 1 {
		t.Fatalf("expected 1 word but got %d", len(words))
	}

	w := words[0]
	if w.Bottom != 92 {
		t.Errorf("expected Bottom=92 but got %v", w.Bottom)
	}
	if w.Top != 80 {
		t.Errorf("expected Top=80 but got %v", w.Top)
	}
	if w.Left != 10 || w.Right != 20 {
		t.Errorf("expected Left=10 Right=20 but got Left=%v Right=%v", w.Left, w.Right)
	}
}
