package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
)

// execRoot runs the root command with the given stdin and args, returning
// stdout, stderr, and the execution error.
func execRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootMergesStdin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout, _, err := execRoot(t, "10.0.0.0/24\n10.0.1.0/24\n10.0.2.0/24\n10.0.3.0/24\n")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "10.0.0.0/22\n" {
		t.Errorf("stdout = %q, want %q", stdout, "10.0.0.0/22\n")
	}
}

func TestRootToleranceFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout, _, err := execRoot(t, "10.0.0.0/24\n10.0.2.0/24\n", "-t", "512")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "10.0.0.0/22\n" {
		t.Errorf("stdout = %q, want %q", stdout, "10.0.0.0/22\n")
	}
}

func TestRootCheckDirty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout, _, err := execRoot(t, "10.0.0.0/24\n10.0.1.0/24\n", "--check")
	if !stderrors.Is(err, ErrNotMinimal) {
		t.Errorf("execute error = %v, want ErrNotMinimal", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestRootCheckClean(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout, _, err := execRoot(t, "10.0.0.0/23\n10.0.2.0/24\n", "--check")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestRootParseErrorMentionsLine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, _, err := execRoot(t, "10.0.0.0/24\n\nnot-a-cidr\n")
	if err == nil {
		t.Fatal("execute succeeded, want error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error = %q, want line 3 mentioned", err)
	}
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, _, err := execRoot(t, "", "10.0.0.0/24")
	if err == nil {
		t.Error("execute succeeded with positional args, want error")
	}
}

func TestRootStatsFlagToStderr(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	stdout, stderr, err := execRoot(t, "10.0.0.0/24\n10.0.1.0/24\n", "--stats")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if stdout != "10.0.0.0/23\n" {
		t.Errorf("stdout = %q, want merged output only", stdout)
	}
	if !strings.Contains(stderr, "CIDR merge statistics:") {
		t.Errorf("stderr = %q, want statistics block", stderr)
	}
}
