package words

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := normalize([]string{" Happy", "happy", "rhythm", "two words", "brave", "", "Ünïcode"})
	want := []string{"happy", "brave"}
	if len(got) != len(want) {
		t.Fatalf("normalize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starters.txt")
	if err := os.WriteFile(path, []byte("# comment\nhappy\n\n  calm  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readWordFile(path)
	if err != nil {
		t.Fatalf("readWordFile() error = %v", err)
	}
	if len(got) != 2 || got[0] != "happy" || got[1] != "calm" {
		t.Errorf("readWordFile() = %v, want [happy calm]", got)
	}

	if _, err := readWordFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("readWordFile() on missing file returned nil error")
	}
}

func TestInitEmbeddedAndRandomStarter(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Stats() == 0 {
		t.Fatal("no starter words loaded")
	}
	set := make(map[string]bool)
	for _, w := range Starters() {
		set[w] = true
	}
	for i := 0; i < 20; i++ {
		if w := RandomStarter(); !set[w] {
			t.Errorf("RandomStarter() = %q, not in starter list", w)
		}
	}
}
