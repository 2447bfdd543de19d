package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `environment: test
market:
  source: synthetic
history:
  type: none
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Simulation.DefaultPaths != 1000 {
		t.Fatalf("default paths = %d, want 1000", c.Simulation.DefaultPaths)
	}
	if c.Valuation.FxSymbol != "USDTHB" {
		t.Fatalf("fx symbol = %q", c.Valuation.FxSymbol)
	}
	if len(c.Market.Symbols) != 5 {
		t.Fatalf("symbols = %v, want 5 defaults", c.Market.Symbols)
	}
}

func TestLoadRejectsUnknownHistory(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\nhistory:\n  type: postgres\n"))
	if err == nil {
		t.Fatalf("expected error for unknown history backend")
	}
}

func TestLoadRejectsWebsocketWithoutURL(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\nmarket:\n  source: websocket\n"))
	if err == nil {
		t.Fatalf("expected error for websocket source without url")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SYMBOLS", "AAA,BBB")
	t.Setenv("HISTORY_BACKEND", "none")
	c, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Market.Symbols) != 2 || c.Market.Symbols[0] != "AAA" {
		t.Fatalf("symbols = %v", c.Market.Symbols)
	}
}
