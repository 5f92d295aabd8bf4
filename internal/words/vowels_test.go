package words

import (
	"errors"
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"glad", "gl_d"},
		{"Joyful", "j_yf_l"},
		{"rhythm", "rhythm"},
		{"queue", "q____"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Mask(tt.word); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		vowels  string
		want    string
		wantErr error
	}{
		{name: "single vowel", word: "glad", vowels: "a", want: "glad"},
		{name: "in order", word: "cheerful", vowels: "eeu", want: "cheerful"},
		{name: "wrong vowels still fill", word: "joyful", vowels: "ia", want: "jiyfal"},
		{name: "case and space", word: "Elated", vowels: " EAE ", want: "elated"},
		{name: "too few", word: "cheerful", vowels: "ee", wantErr: ErrVowelCount},
		{name: "too many", word: "glad", vowels: "aa", wantErr: ErrVowelCount},
		{name: "consonant", word: "glad", vowels: "b", wantErr: ErrNotVowel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fill(tt.word, tt.vowels)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fill() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Fill() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVowelCount(t *testing.T) {
	if got := VowelCount("Queue"); got != 4 {
		t.Errorf("VowelCount(Queue) = %d, want 4", got)
	}
	if got := VowelCount("rhythm"); got != 0 {
		t.Errorf("VowelCount(rhythm) = %d, want 0", got)
	}
}
