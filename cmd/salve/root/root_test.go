package root

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flarebyte/salve/internal/stage"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(args ...string) result {
	var stdout, stderr bytes.Buffer
	err := ExecuteWith(args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

func requireKind(t *testing.T, err error, want stage.Kind) {
	t.Helper()
	var se *stage.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, want, se.Kind, se.Error())
	require.Equal(t, 1, exitCode(err))
}

func TestExample_IgnoresOtherFlags(t *testing.T) {
	r := execute("--example", "--names", "A!", "--repeat", "0")
	require.NoError(t, r.err)
	require.Contains(t, r.stdout, "Usage examples:")
	require.Contains(t, r.stdout, `salve --names "Mario,Anna" --greetings "Salve,Ciao" --repeat 3`)
	require.Contains(t, r.stdout, `--repeat 3 --output greetings.txt`)
	require.Empty(t, r.stderr)
}

func TestGreetings_Scenarios(t *testing.T) {
	cases := []struct {
		name       string
		args       []string
		wantOut    string
		wantStderr string
	}{
		{
			name:    "cyclic equal lists",
			args:    []string{"--names", "Mario,Anna", "--greetings", "Salve,Ciao", "--repeat", "3"},
			wantOut: "Salve Mario!\nCiao Anna!\nSalve Mario!\n",
		},
		{
			name:    "defaults to one line",
			args:    []string{"-n", "Mario", "-g", "Salve"},
			wantOut: "Salve Mario!\n",
		},
		{
			name:       "mismatched counts warn",
			args:       []string{"--names", "Mario,Anna", "--greetings", "Salve", "--repeat", "2"},
			wantOut:    "Salve Mario!\nSalve Anna!\n",
			wantStderr: "warning: number of names (2) and greetings (1) differ; pairing them cyclically\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := execute(tc.args...)
			require.NoError(t, r.err)
			require.Equal(t, tc.wantOut, r.stdout)
			require.Equal(t, tc.wantStderr, r.stderr)
		})
	}
}

func TestRepeat_LineCount(t *testing.T) {
	r := execute("--names", "Mario", "--greetings", "Salve", "--repeat", "7")
	require.NoError(t, r.err)
	require.Equal(t, 7, strings.Count(r.stdout, "Salve Mario!\n"))
}

func TestVerbose(t *testing.T) {
	r := execute("--names", "Mario", "--greetings", "Salve", "--verbose")
	require.NoError(t, r.err)
	want := "Verbose mode enabled.\nRepeat count: 1\nGreetings: [\"Salve\"]\nNames: [\"Mario\"]\nSalve Mario!\n"
	require.Equal(t, want, r.stdout)
}

func TestValidationFailures_NoOutput(t *testing.T) {
	long := strings.Repeat("Mario", 11)
	cases := []struct {
		name    string
		args    []string
		kind    stage.Kind
		message string
	}{
		{name: "too short", args: []string{"-n", "A", "-g", "Salve"}, kind: stage.TooShort, message: "name 'A' is too short: minimum length is 2"},
		{name: "too long", args: []string{"-n", long, "-g", "Salve"}, kind: stage.TooLong, message: "name '" + long + "' is too long"},
		{name: "empty names", args: []string{"-n", "", "-g", "Salve"}, kind: stage.InvalidCharacters, message: "name '' contains invalid characters"},
		{name: "empty greetings", args: []string{"-n", "Mario", "-g", ""}, kind: stage.InvalidCharacters, message: "greeting '' contains invalid characters"},
		{name: "negative repeat", args: []string{"-n", "Mario", "-g", "Salve", "--repeat", "-3"}, kind: stage.InvalidRepeatValue},
		{name: "zero repeat", args: []string{"-n", "Mario", "-g", "Salve", "-r", "0"}, kind: stage.InvalidRepeatValue},
		{name: "missing names", args: []string{"-g", "Salve"}, kind: stage.ArgumentMissing, message: "missing required flag: --names"},
		{name: "missing greetings", args: []string{"-n", "Mario"}, kind: stage.ArgumentMissing, message: "missing required flag: --greetings"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := execute(tc.args...)
			requireKind(t, r.err, tc.kind)
			require.Contains(t, r.err.Error(), tc.message)
			require.Empty(t, r.stdout)
		})
	}
}

func TestFlagParsingErrors_UsageExitCode(t *testing.T) {
	for _, args := range [][]string{
		{"-n", "Mario", "-g", "Salve", "--repeat", "abc"},
		{"-n", "Mario", "-g", "Salve", "--bogus"},
		{"-n", "Mario", "-g", "Salve", "--log-level", "loud"},
	} {
		r := execute(args...)
		require.Error(t, r.err)
		require.Equal(t, exitCodeUsage, exitCode(r.err), r.err.Error())
		require.Empty(t, r.stdout)
	}
}

func TestOutputFile_RoundTripMatchesStdout(t *testing.T) {
	p := filepath.Join(t.TempDir(), "greetings.txt")
	args := []string{"--names", "Mario,Anna,Luca", "--greetings", "Salve,Ciao", "--repeat", "5", "--verbose"}

	toStdout := execute(args...)
	require.NoError(t, toStdout.err)

	toFile := execute(append(args, "--output", p)...)
	require.NoError(t, toFile.err)
	require.Empty(t, toFile.stdout)

	got, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, toStdout.stdout, string(got))
}

func TestOutputFile_CreationFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "greetings.txt")
	r := execute("-n", "Mario", "-g", "Salve", "-o", p)
	requireKind(t, r.err, stage.SinkCreationError)
	require.Contains(t, r.err.Error(), "cannot create output file '"+p+"'")
	require.Empty(t, r.stdout)
}

func TestOutputFile_EmptyPathFails(t *testing.T) {
	r := execute("-n", "Mario", "-g", "Salve", "-o", "")
	requireKind(t, r.err, stage.SinkCreationError)
	require.Empty(t, r.stdout)
}

func TestOutputFile_DashIsAFileName(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	r := execute("-n", "Mario", "-g", "Salve", "-o", "-")
	require.NoError(t, r.err)
	require.Empty(t, r.stdout)
	got, err := os.ReadFile(filepath.Join(dir, "-"))
	require.NoError(t, err)
	require.Equal(t, "Salve Mario!\n", string(got))
}

func TestOutputFile_FromConfig(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "greetings.txt")
	cfg := filepath.Join(dir, "salve.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: "+out+"\n"), 0o644))
	r := execute("-c", cfg, "-n", "Mario", "-g", "Salve")
	require.NoError(t, r.err)
	require.Empty(t, r.stdout)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Salve Mario!\n", string(got))
}

func TestOutputFile_MidRenderFailureKeepsPrefix(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "greetings.txt")
	cfg := filepath.Join(dir, "salve.yaml")
	lua := "format:\n  lua: \"if index == 2 then error('boom') end return greeting .. ' ' .. name\"\n"
	require.NoError(t, os.WriteFile(cfg, []byte(lua), 0o644))

	r := execute("-c", cfg, "-n", "Mario,Anna", "-g", "Salve", "-r", "4", "-o", out)
	requireKind(t, r.err, stage.FormatError)
	require.Contains(t, r.err.Error(), "line 2")
	require.Empty(t, r.stdout)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "Salve Mario\nSalve Anna\n", string(got))
}

func TestExecutePipeline_ReleasesSinkOnFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "greetings.txt")
	args := stage.Args{
		Names:        "Mario",
		HasNames:     true,
		Greetings:    "Salve",
		HasGreetings: true,
		Repeat:       3,
		Output:       out,
		HasOutput:    true,
		FormatLua:    "return 42",
	}
	env, err := runStages(context.Background(), stage.Envelope{Args: args}, greetingStages, stage.Deps{})
	requireKind(t, err, stage.FormatError)
	require.Equal(t, out, env.SinkPath)
	f, ok := env.Sink.(*os.File)
	require.True(t, ok, "expected the file sink back from the failed run")

	require.NoError(t, stage.Release(env))
	_, werr := f.Write([]byte("x"))
	require.Error(t, werr, "sink must be closed after release")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestOutputFile_NotCreatedOnValidationError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "greetings.txt")
	r := execute("-n", "A", "-g", "Salve", "-o", p)
	requireKind(t, r.err, stage.TooShort)
	_, err := os.Stat(p)
	require.True(t, os.IsNotExist(err))
}

func TestConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "salve.yaml")
	content := "names: \"Mario,Anna\"\ngreetings: Ciao\nrepeat: 2\n"
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))

	r := execute("--config", cfg)
	require.NoError(t, r.err)
	require.Equal(t, "Ciao Mario!\nCiao Anna!\n", r.stdout)

	r = execute("-c", cfg, "--greetings", "Salve", "--repeat", "1")
	require.NoError(t, r.err)
	require.Equal(t, "Salve Mario!\n", r.stdout)
}

func TestConfig_ValuesStillValidated(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "salve.cue")
	require.NoError(t, os.WriteFile(cfg, []byte(`names: "A"
greetings: "Salve"
`), 0o644))
	r := execute("-c", cfg)
	requireKind(t, r.err, stage.TooShort)
	require.Empty(t, r.stdout)
}

func TestConfig_LoadFailure(t *testing.T) {
	r := execute("-c", filepath.Join(t.TempDir(), "salve.toml"))
	requireKind(t, r.err, stage.ConfigError)
}

func TestConfig_LuaFormat(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "salve.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte(`
names     = "Mario"
greetings = "Salve"
repeat    = 2

format {
  lua = "string.upper(greeting) .. ', ' .. name .. '.'"
}
`), 0o644))
	r := execute("-c", cfg)
	require.NoError(t, r.err)
	require.Equal(t, "SALVE, Mario.\nSALVE, Mario.\n", r.stdout)
}

func TestConfig_LuaCompileErrorBeforeSink(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "greetings.txt")
	cfg := filepath.Join(dir, "salve.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("format:\n  lua: \"greeting ..\"\n"), 0o644))
	r := execute("-c", cfg, "-n", "Mario", "-g", "Salve", "-o", out)
	requireKind(t, r.err, stage.FormatError)
	_, err := os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

func TestSummary_WrittenAfterRender(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run", "summary.yaml")
	r := execute("-n", "Mario", "-g", "Salve", "-r", "2", "--summary", p)
	require.NoError(t, r.err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	s := string(b)
	require.Contains(t, s, "lines: 2\n")
	require.Contains(t, s, "names:\n  - Mario\n")
	require.Contains(t, s, "runId: ")
}

func TestDebugLogging_GoesToStderr(t *testing.T) {
	r := execute("-n", "Mario", "-g", "Salve", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, r.err)
	require.Equal(t, "Salve Mario!\n", r.stdout)
	require.Contains(t, r.stderr, `"msg":"stage started"`)
	require.Contains(t, r.stderr, `"stage":"render-lines"`)
	require.Contains(t, r.stderr, `"run_id":`)
}

func TestVersionSubcommand(t *testing.T) {
	r := execute("version", "--short")
	require.NoError(t, r.err)
	require.True(t, strings.HasPrefix(r.stdout, "salve "), r.stdout)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
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
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
