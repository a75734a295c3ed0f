package config

import (
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "model_name": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nmodel_name\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "model_name: from-file\nbackend_url: http://file:11434\n")
	t.Setenv("MATHQA_MODEL_NAME", "from-env")
	t.Setenv("MATHQA_STOP_SEQUENCES", "a,b")
	cfg, err := Resolve(p)
	if err != nil { t.Fatalf("resolve: %v", err) }
	if cfg.ModelName != "from-env" { t.Fatalf("env did not override file: %q", cfg.ModelName) }
	if cfg.BackendURL != "http://file:11434" { t.Fatalf("file value lost: %q", cfg.BackendURL) }
	if len(cfg.StopSequences) != 2 || cfg.StopSequences[0] != "a" { t.Fatalf("stop=%v", cfg.StopSequences) }
	if cfg.AllowedOrigin != DefaultAllowedOrigin { t.Fatalf("default not applied: %q", cfg.AllowedOrigin) }
}

func TestResolve_NoPathUsesDefaults(t *testing.T) {
	cfg, err := Resolve("")
	if err != nil { t.Fatalf("resolve: %v", err) }
	if cfg.ModelName != DefaultModelName { t.Fatalf("model=%q", cfg.ModelName) }
}

func TestResolve_RejectsInvalidValues(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "backend_url: not a url\n")
	if _, err := Resolve(p); err == nil {
		t.Fatalf("expected validation error for backend_url")
	}
	p = writeTempFile(t, d, "cfg2.yaml", "temperature: 5\n")
	if _, err := Resolve(p); err == nil {
		t.Fatalf("expected validation error for temperature")
	}
	p = writeTempFile(t, d, "cfg3.yaml", "log_level: loud\n")
	if _, err := Resolve(p); err == nil {
		t.Fatalf("expected validation error for log_level")
	}
}
