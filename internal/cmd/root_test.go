package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootSortsFiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFiles(t, src, map[string]string{
		"a.txt":             "a",
		"sub/b.JPG":         "b",
		"sub/deep/Makefile": "c",
	})

	_, stderr, err := execute(t, src, dst, "--lock-dir", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr)
	}

	for _, rel := range []string{"txt/a.txt", "JPG/b.JPG", "unknown/Makefile"} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Errorf("expected %s in destination: %v", rel, err)
		}
	}
	if !strings.Contains(stderr, "Copying process completed.") {
		t.Errorf("missing completion line in log:\n%s", stderr)
	}
	if !strings.Contains(stderr, "[INFO] Starting the copying process from: "+src) {
		t.Errorf("missing start line in log:\n%s", stderr)
	}
}

func TestRootRequiresTwoArgs(t *testing.T) {
	_, _, err := execute(t, t.TempDir())
	if err == nil {
		t.Fatal("expected an argument error")
	}
	if code := ExitCode(err); code != ExitFatal {
		t.Errorf("exit code = %d, want %d", code, ExitFatal)
	}
}

func TestRootMissingSourceIsFatal(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	_, stderr, err := execute(t, filepath.Join(t.TempDir(), "nope"), dst, "--no-lock")
	if code := ExitCode(err); code != ExitFatal {
		t.Fatalf("exit code = %d, want %d (err %v)", code, ExitFatal, err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Errorf("destination should not be created, stat err = %v", statErr)
	}
	if !strings.Contains(stderr, "[ERROR]") {
		t.Errorf("expected an error line in log:\n%s", stderr)
	}
}

// failingSource returns a source tree whose only file cannot be copied
// because a regular file occupies its bucket directory in dst.
func failingSource(t *testing.T) (src, dst string) {
	t.Helper()
	src = t.TempDir()
	dst = t.TempDir()
	writeFiles(t, src, map[string]string{
		"ok.md":  "fine",
		"bad.gz": "blocked",
	})
	if err := os.WriteFile(filepath.Join(dst, "gz"), []byte("squatter"), 0o644); err != nil {
		t.Fatal(err)
	}
	return src, dst
}

func TestRootPartialFailureExitCode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "strict by default", args: nil, want: ExitPartial},
		{name: "strict disabled", args: []string{"--strict=false"}, want: ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := failingSource(t)
			args := append([]string{src, dst, "--no-lock"}, tt.args...)
			_, stderr, err := execute(t, args...)
			if code := ExitCode(err); code != tt.want {
				t.Fatalf("exit code = %d, want %d (err %v)", code, tt.want, err)
			}
			if !strings.Contains(stderr, "Error copying "+filepath.Join(src, "bad.gz")) {
				t.Errorf("missing per-file error line:\n%s", stderr)
			}
			if _, err := os.Stat(filepath.Join(dst, "md", "ok.md")); err != nil {
				t.Errorf("sibling file was not copied: %v", err)
			}
		})
	}
}

func TestRootWritesReport(t *testing.T) {
	src, dst := failingSource(t)
	reportPath := filepath.Join(t.TempDir(), "reports", "run.json")

	_, _, err := execute(t, src, dst, "--no-lock", "--strict=false", "--report", reportPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report struct {
		Source  string `json:"source"`
		Results []struct {
			Source string `json:"source"`
			Error  string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid report JSON: %v\n%s", err, data)
	}
	if len(report.Results) != 2 {
		t.Fatalf("report has %d results, want 2", len(report.Results))
	}
	failed := 0
	for _, r := range report.Results {
		if r.Error != "" {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("report has %d failures, want 1", failed)
	}
}

func TestRootSummary(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.csv": "1", "b.csv": "2", "c": "3"})

	stdout, _, err := execute(t, src, t.TempDir(), "--no-lock", "--summary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Bucket", "csv", "unknown", "total"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}
}

func TestRootConfigFile(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.txt": "a"})

	cfgPath := filepath.Join(t.TempDir(), "extsort.toml")
	content := fmt.Sprintf("workers = 2\nlog_level = \"error\"\nlock_dir = %q\n", t.TempDir())
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file level applies", func(t *testing.T) {
		_, stderr, err := execute(t, src, t.TempDir(), "--config", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(stderr, "[INFO]") {
			t.Errorf("info lines should be filtered at level error:\n%s", stderr)
		}
	})

	t.Run("flag overrides file", func(t *testing.T) {
		_, stderr, err := execute(t, src, t.TempDir(), "--config", cfgPath, "--log-level", "info")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "[INFO] Copied: ") {
			t.Errorf("expected info lines with --log-level info:\n%s", stderr)
		}
	})
}

func TestRootRejectsBadSettings(t *testing.T) {
	badCfg := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(badCfg, []byte("wrokers = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{name: "zero workers", args: []string{"--workers", "0"}},
		{name: "unknown level", args: []string{"--log-level", "loud"}},
		{name: "unknown config key", args: []string{"--config", badCfg}},
		{name: "missing config", args: []string{"--config", filepath.Join(t.TempDir(), "none.toml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out")
			args := append([]string{t.TempDir(), dst, "--no-lock"}, tt.args...)
			_, _, err := execute(t, args...)
			if code := ExitCode(err); code != ExitFatal {
				t.Fatalf("exit code = %d, want %d (err %v)", code, ExitFatal, err)
			}
			if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
				t.Errorf("destination should not be created")
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain error", err: errors.New("boom"), want: ExitFatal},
		{name: "partial", err: &ExitError{Code: ExitPartial, Err: errors.New("x")}, want: ExitPartial},
		{name: "wrapped", err: fmt.Errorf("run: %w", &ExitError{Code: ExitPartial, Err: errors.New("x")}), want: ExitPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"extsort version ", "Commit: ", "Build Date: "} {
		if !strings.Contains(stdout, want) {
			t.Errorf("version output missing %q:\n%s", want, stdout)
		}
	}
}
