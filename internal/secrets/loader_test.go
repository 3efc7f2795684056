package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  tok-123  \n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	secret, err := Load(Source{Name: "scorer token", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "tok-123" {
		t.Fatalf("expected trimmed file secret, got %q", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MATCH_TEST_TOKEN", " env-tok ")

	secret, err := Load(Source{Name: "scorer token", Env: "MATCH_TEST_TOKEN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "env-tok" {
		t.Fatalf("expected env secret, got %q", secret)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "scorer token"}); err == nil {
		t.Fatalf("expected error for empty source")
	}

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	if _, err := Load(Source{Name: "scorer token", File: path}); err == nil {
		t.Fatalf("expected error for empty file")
	}

	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
