// Package runner stages in-memory file content on the real filesystem and
// executes it as a subprocess. It is the execution collaborator of the
// in-memory tree: the tree only hands over a name and a byte sequence and
// receives back an exit status.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/memfs-dev/memfs/config"
	"github.com/memfs-dev/memfs/internal/util"
)

// FailureStatus is the sentinel returned when staging or launching fails, as
// opposed to the process running and exiting. A legitimate exit status can
// be negative on some platforms, so the sentinel alone is never
// load-bearing: Run returns a non-nil error in exactly the cases the
// sentinel is returned.
const FailureStatus = -1

// Runner stages artifacts under uniquely named temp directories and runs
// them. Unlike the tree it serves, a Runner is safe for concurrent use;
// each run stages into its own directory.
type Runner struct {
	cfg    *config.Config
	staged *xsync.Map[string, string] // staging ID -> artifact path of in-flight runs

	// Stdout of the staged process. If not set, os.Stdout will be used.
	OutWriter io.Writer
	// Stderr of the staged process. If not set, os.Stderr will be used.
	ErrWriter io.Writer
}

// New creates a Runner. A nil cfg uses the defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Runner{
		cfg:    cfg,
		staged: xsync.NewMap[string, string](),
	}
}

// Output returns [Runner.OutWriter] if set or [os.Stdout] otherwise.
func (r *Runner) Output() io.Writer {
	if r.OutWriter == nil {
		return os.Stdout
	}
	return r.OutWriter
}

// ErrOutput returns [Runner.ErrWriter] if set or [os.Stderr] otherwise.
func (r *Runner) ErrOutput() io.Writer {
	if r.ErrWriter == nil {
		return os.Stderr
	}
	return r.ErrWriter
}

// InFlight returns the number of runs currently staged.
func (r *Runner) InFlight() int {
	return r.staged.Size()
}

// Run stages content under name in a fresh temp directory, marks it
// executable, runs it and returns the process exit status. The staged
// artifact is removed afterwards regardless of outcome.
//
// A non-zero exit status from a process that ran is a normal result with a
// nil error. FailureStatus with a non-nil error means the process never ran
// to completion on its own: staging failed, launch failed, or the
// configured timeout or ctx cancelled it.
func (r *Runner) Run(ctx context.Context, name string, content []byte) (int, error) {
	logger := util.GetLogger("Runner.Run")

	id := uuid.New().String()
	base := r.cfg.TempDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "memfs-"+id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return FailureStatus, err
	}
	defer os.RemoveAll(dir)

	artifact := filepath.Join(dir, execName(name))
	r.staged.Store(id, artifact)
	defer r.staged.Delete(id)

	if err := os.WriteFile(artifact, content, 0o755); err != nil {
		return FailureStatus, err
	}
	if err := os.Chmod(artifact, 0o755); err != nil {
		return FailureStatus, err
	}

	if r.cfg.ExecTimeout > 0 {
		var cancel context.CancelFunc
		timeout := time.Duration(r.cfg.ExecTimeout * float64(time.Second))
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, artifact)
	cmd.Dir = dir
	cmd.Stdout = r.Output()
	cmd.Stderr = r.ErrOutput()

	logger.Debug().Str("name", name).Str("artifact", artifact).Msg("Running staged artifact")
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return FailureStatus, ctxErr
	}
	status, ok := statusFrom(err)
	if !ok && err != nil {
		logger.Debug().Err(err).Str("name", name).Msg("Staged artifact failed to launch")
		return FailureStatus, err
	}
	return status, nil
}

// statusFrom extracts the exit status from a [exec.Cmd.Run] error. The
// second return is false when the error does not carry a status.
func statusFrom(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), true
	}
	return FailureStatus, false
}

// execName returns the staged artifact file name for the given node name.
// Windows resolves executables by extension.
func execName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}
