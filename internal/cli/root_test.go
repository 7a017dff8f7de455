package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iamNilotpal/lthash/internal/core/domain"
	"github.com/iamNilotpal/lthash/internal/core/services/snapshot"
	"github.com/iamNilotpal/lthash/internal/serialize"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAppleOrangeThroughSavedState(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.snap")
	expected := filepath.Join(dir, "expected.snap")

	if _, err := run(t, "apple\norange\n", "sum", "--save", expected); err != nil {
		t.Fatalf("sum error = %v", err)
	}

	steps := []struct {
		args  []string
		equal bool
	}{
		{[]string{"add", "apple", "orange"}, true},
		{[]string{"remove", "apple"}, false},
		{[]string{"update", "orange", "apple"}, false},
		{[]string{"add", "orange"}, true},
	}

	for _, step := range steps {
		if _, err := run(t, "", append([]string{"--state", state}, step.args...)...); err != nil {
			t.Fatalf("%v error = %v", step.args, err)
		}

		out, err := run(t, "", "--state", state, "verify", expected)
		if step.equal {
			if err != nil || strings.TrimSpace(out) != "OK" {
				t.Fatalf("after %v: verify = %q, %v; want OK", step.args, out, err)
			}
		} else if !stderrors.Is(err, ErrMismatch) {
			t.Fatalf("after %v: verify error = %v, want ErrMismatch", step.args, err)
		}
	}
}

func TestSumIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("one\ntwo\nthree\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("three\none\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}

	outA, err := run(t, "", "sum", "--format", "fingerprint", a)
	if err != nil {
		t.Fatalf("sum a error = %v", err)
	}
	outB, err := run(t, "", "sum", "--format", "fingerprint", b)
	if err != nil {
		t.Fatalf("sum b error = %v", err)
	}
	if outA != outB {
		t.Fatalf("fingerprints differ: %q vs %q", outA, outB)
	}

	whole, err := run(t, "", "sum", "--whole", "--format", "fingerprint", a)
	if err != nil {
		t.Fatalf("sum --whole error = %v", err)
	}
	if whole == outA {
		t.Fatal("--whole produced the per-line checksum")
	}
}

func TestSumHexWidth(t *testing.T) {
	out, err := run(t, "x\n", "sum")
	if err != nil {
		t.Fatalf("sum error = %v", err)
	}
	if got := len(strings.TrimSpace(out)); got != 2*domain.ChecksumSize {
		t.Fatalf("hex length = %d, want %d", got, 2*domain.ChecksumSize)
	}

	if _, err := run(t, "x\n", "sum", "--format", "octal"); err == nil {
		t.Fatal("sum --format octal error = nil")
	}
}

func TestResetAndShow(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.snap")

	if _, err := run(t, "", "--state", state, "add", "apple"); err != nil {
		t.Fatalf("add error = %v", err)
	}

	out, err := run(t, "", "--state", state, "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	var shown showOutput
	if err := serialize.UnMarshalJSON([]byte(out), &shown); err != nil {
		t.Fatalf("show output %q: %v", out, err)
	}
	if shown.Empty || shown.Algorithm != "blake3" || shown.DigestSize != 32 || shown.Version != snapshot.Version {
		t.Fatalf("show = %+v", shown)
	}
	sum, err := run(t, "apple\n", "--state", state, "sum", "--format", "fingerprint")
	if err != nil {
		t.Fatalf("sum error = %v", err)
	}
	if shown.Fingerprint == "" || shown.Fingerprint != strings.TrimSpace(sum) {
		t.Fatalf("show fingerprint = %q, sum fingerprint = %q", shown.Fingerprint, sum)
	}

	if _, err := run(t, "", "--state", state, "reset"); err != nil {
		t.Fatalf("reset error = %v", err)
	}
	out, err = run(t, "", "--state", state, "show")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if err := serialize.UnMarshalJSON([]byte(out), &shown); err != nil {
		t.Fatal(err)
	}
	if !shown.Empty {
		t.Fatal("show after reset reports a non-empty checksum")
	}
}

func TestVerifyRejectsDifferentAlgorithm(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "sha.yaml")
	if err := os.WriteFile(cfg, []byte("digest:\n  algorithm: sha256\n"), 0644); err != nil {
		t.Fatal(err)
	}

	other := filepath.Join(dir, "other.snap")
	if _, err := run(t, "apple\n", "--config", cfg, "sum", "--save", other); err != nil {
		t.Fatalf("sum error = %v", err)
	}

	state := filepath.Join(dir, "state.snap")
	if _, err := run(t, "", "--state", state, "add", "apple"); err != nil {
		t.Fatalf("add error = %v", err)
	}

	if _, err := run(t, "", "--state", state, "verify", other); !stderrors.Is(err, ErrMismatch) {
		t.Fatalf("verify error = %v, want ErrMismatch", err)
	}
}

func TestShowWithoutState(t *testing.T) {
	state := filepath.Join(t.TempDir(), "absent.snap")
	if _, err := run(t, "", "--state", state, "show"); !stderrors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("show error = %v, want ErrNotFound", err)
	}
}

func TestArgumentValidation(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.snap")
	for _, args := range [][]string{
		{"add"},
		{"update", "only-one"},
		{"verify"},
		{"reset", "extra"},
	} {
		if _, err := run(t, "", append([]string{"--state", state}, args...)...); err == nil {
			t.Errorf("%v error = nil", args)
		}
	}
}
