package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Port != "5175" || c.LookupMode != LookupHTTP || c.HistoryBackend != HistorySQLite {
		t.Errorf("defaults = %+v", c)
	}
	if c.HistoryLimit != 10 || c.TickInterval != time.Second || c.StrictGuesses {
		t.Errorf("round defaults = limit %d tick %s strict %v", c.HistoryLimit, c.TickInterval, c.StrictGuesses)
	}
	if c.Production() {
		t.Error("default config reports production")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("LOOKUP_MODE", " Static ")
	t.Setenv("HISTORY_BACKEND", "memory")
	t.Setenv("LOOKUP_TIMEOUT", "250ms")
	t.Setenv("LOOKUP_RETRIES", "5")
	t.Setenv("STRICT_GUESSES", "true")
	t.Setenv("APP_ENV", "production")

	c, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.LookupMode != LookupStatic || c.HistoryBackend != HistoryMemory {
		t.Errorf("modes = %q %q", c.LookupMode, c.HistoryBackend)
	}
	if c.LookupTimeout != 250*time.Millisecond || c.LookupRetries != 5 || !c.StrictGuesses || !c.Production() {
		t.Errorf("overrides = %+v", c)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{name: "lookup mode", key: "LOOKUP_MODE", value: "carrier-pigeon", want: "LOOKUP_MODE"},
		{name: "history backend", key: "HISTORY_BACKEND", value: "redis", want: "HISTORY_BACKEND"},
		{name: "tick interval", key: "TICK_INTERVAL", value: "0s", want: "TICK_INTERVAL"},
		{name: "history limit", key: "HISTORY_LIMIT", value: "0", want: "HISTORY_LIMIT"},
		{name: "malformed duration", key: "LOOKUP_TIMEOUT", value: "soon", want: "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
