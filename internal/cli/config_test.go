package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "tolerance = \"/22\"\nstats = true\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Tolerance != "/22" {
		t.Errorf("Tolerance = %q, want %q", cfg.Tolerance, "/22")
	}
	if !cfg.Stats {
		t.Error("Stats = false, want true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig() on missing file failed: %v", err)
	}
	if cfg != (config{}) {
		t.Errorf("loadConfig() = %+v, want zero config", cfg)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "tolerance = [broken\n")

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() succeeded on malformed TOML, want error")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "tolernace = \"512\"\n") // typo must be rejected

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() succeeded with unknown key, want error")
	}
}

func TestConfigDefaultsApplied(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "tolerance = \"/22\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Without an explicit flag the configured tolerance bridges the gap.
	stdout, _, err := execRoot(t, "10.0.0.0/24\n10.0.2.0/24\n")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "10.0.0.0/22\n" {
		t.Errorf("stdout = %q, want %q", stdout, "10.0.0.0/22\n")
	}

	// An explicit flag wins over the config file.
	stdout, _, err = execRoot(t, "10.0.0.0/24\n10.0.2.0/24\n", "--tolerance", "0")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "10.0.0.0/24\n10.0.2.0/24\n" {
		t.Errorf("stdout = %q, want both networks unchanged", stdout)
	}
}
