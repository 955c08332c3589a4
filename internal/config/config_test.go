package config

import (
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != DefaultPrompt || cfg.MaxJobs != DefaultMaxJobs || !cfg.EmitPrompt {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HistoryFile != filepath.Join(home, ".tsh_history") {
		t.Fatalf("unexpected history file %q", cfg.HistoryFile)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsh.yml")
	data := "prompt: \"$ \"\nmax_jobs: 4\nverbose: true\nhistory_file: /tmp/h\nemit_prompt: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "$ " || cfg.MaxJobs != 4 || !cfg.Verbose || cfg.EmitPrompt || cfg.HistoryFile != "/tmp/h" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HistorySize != DefaultHistorySize {
		t.Fatalf("unset field lost its default: %d", cfg.HistorySize)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsh.toml")
	data := "prompt = \"% \"\nmax_jobs = 8\nmerge_stderr = false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "% " || cfg.MaxJobs != 8 || cfg.MergeStderr {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsh.yml")
	if err := os.WriteFile(path, []byte("max_jobs: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsh.yml")
	if err := os.WriteFile(path, []byte("max_jobs: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected max_jobs validation error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TSH_PROMPT":       "> ",
		"TSH_MAX_JOBS":     "3",
		"TSH_VERBOSE":      "true",
		"TSH_EMIT_PROMPT":  "0",
		"TSH_HISTORY_SIZE": "10",
	}
	cfg := Default()
	err := cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Prompt != "> " || cfg.MaxJobs != 3 || !cfg.Verbose || cfg.EmitPrompt || cfg.HistorySize != 10 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestApplyEnvBadValues(t *testing.T) {
	for _, kv := range [][2]string{{"TSH_MAX_JOBS", "many"}, {"TSH_VERBOSE", "maybe"}} {
		cfg := Default()
		err := cfg.applyEnv(func(k string) (string, bool) {
			if k == kv[0] {
				return kv[1], true
			}
			return "", false
		})
		if err == nil {
			t.Errorf("%s=%s: expected an error", kv[0], kv[1])
		}
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.applyEnv(noEnv); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults fail validation: %v", err)
	}
}
