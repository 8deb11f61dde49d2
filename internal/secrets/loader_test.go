package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := Load(Source{Name: "api key", File: path, Value: "inline"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected file-secret, got %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CVMATCH_TEST_KEY", " env-secret ")

	got, err := Load(Source{Name: "api key", Env: "CVMATCH_TEST_KEY", Value: "inline"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "env-secret" {
		t.Fatalf("expected env-secret, got %q", got)
	}
}

func TestLoadFromValue(t *testing.T) {
	got, err := Load(Source{Name: "api key", Env: "CVMATCH_UNSET_KEY", Value: " inline-secret "})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != "inline-secret" {
		t.Fatalf("expected inline-secret, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatal("expected error when nothing configured")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(Source{Name: "api key", File: empty}); err == nil {
		t.Fatal("expected error for empty secret file")
	}

	if _, err := Load(Source{File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}
