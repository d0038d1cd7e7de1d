package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("FOO", "")
	if got := GetEnv("FOO", "bar"); got != "bar" {
		t.Fatalf("expected bar, got %s", got)
	}
	t.Setenv("FOO", "baz")
	if got := GetEnv("FOO", "bar"); got != "baz" {
		t.Fatalf("expected baz, got %s", got)
	}
}

func TestGetEnvUint16(t *testing.T) {
	t.Setenv("PORT_UNDER_TEST", "")
	got, err := GetEnvUint16("PORT_UNDER_TEST", 8080)
	if err != nil || got != 8080 {
		t.Fatalf("expected default 8080, got %d (%v)", got, err)
	}

	t.Setenv("PORT_UNDER_TEST", "9000")
	got, err = GetEnvUint16("PORT_UNDER_TEST", 8080)
	if err != nil || got != 9000 {
		t.Fatalf("expected 9000, got %d (%v)", got, err)
	}

	for _, bad := range []string{"70000", "-1", "http"} {
		t.Setenv("PORT_UNDER_TEST", bad)
		if _, err := GetEnvUint16("PORT_UNDER_TEST", 8080); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "")
	if got := GetEnvBool("FLAG", true); got != true {
		t.Fatalf("expected true default, got %v", got)
	}
	t.Setenv("FLAG", "false")
	if got := GetEnvBool("FLAG", true); got != false {
		t.Fatalf("expected false, got %v", got)
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("REQUIRED_UNDER_TEST", "   ")
	if _, err := RequireEnv("REQUIRED_UNDER_TEST"); err == nil {
		t.Fatal("expected error for blank value")
	}
	t.Setenv("REQUIRED_UNDER_TEST", " value ")
	got, err := RequireEnv("REQUIRED_UNDER_TEST")
	if err != nil || got != "value" {
		t.Fatalf("expected trimmed value, got %q (%v)", got, err)
	}
}

func TestGetLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if GetLogLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level")
	}
	t.Setenv("LOG_LEVEL", "warn")
	if GetLogLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level")
	}
	t.Setenv("LOG_LEVEL", "error")
	if GetLogLevel() != logrus.ErrorLevel {
		t.Fatalf("expected error level")
	}
	t.Setenv("LOG_LEVEL", "")
	if GetLogLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level by default")
	}
}

func TestLoadEnv_NoFile(t *testing.T) {
	chdirForTest(t, t.TempDir())
	LoadEnv(logrus.New())
	LoadEnv(nil)
}

func TestLoadEnv_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DOTENV_UNDER_TEST=loaded\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdirForTest(t, dir)
	t.Setenv("DOTENV_UNDER_TEST", "")

	LoadEnv(logrus.New())

	if got := os.Getenv("DOTENV_UNDER_TEST"); got != "loaded" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it when the test ends.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
