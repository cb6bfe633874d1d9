package versync

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// CheckStatus classifies the outcome of checking one target.
type CheckStatus int

const (
	// CheckMatch: the target's value equals the canonical version.
	CheckMatch CheckStatus = iota
	// CheckMismatch: the target holds a different version.
	CheckMismatch
	// CheckMissing: the key path is absent from the document.
	CheckMissing
	// CheckError: the target could not be read or parsed.
	CheckError
)

// CheckResult is the outcome for a single target during check.
type CheckResult struct {
	Target Target
	Status CheckStatus
	// Found is the value currently in the file, set for CheckMismatch.
	Found string
	Err   error
}

// ApplyStatus classifies the outcome of applying the version to one target.
type ApplyStatus int

const (
	// ApplyWritten: the target was rewritten with the canonical version.
	ApplyWritten ApplyStatus = iota
	// ApplyUnchanged: the target already held the canonical version.
	ApplyUnchanged
	// ApplyError: the target could not be read, edited, or written.
	ApplyError
)

// ApplyResult is the outcome for a single target during apply.
type ApplyResult struct {
	Target Target
	Status ApplyStatus
	// Old is the value the target held before the write, set for ApplyWritten.
	Old string
	Err error
}

// Engine runs check and apply over every target of a config, strictly in
// declaration order. Targets are independent: a failure on one is recorded
// in its result and the remaining targets are still processed.
type Engine struct {
	cfg *Config
	fs  afero.Fs
	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs overrides the filesystem the engine reads and writes through.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger attaches a logger for per-target diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine over the given config. By default it operates
// on the OS filesystem and logs nothing.
func NewEngine(cfg *Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, fs: afero.NewOsFs(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check compares every target against the canonical version.
func (e *Engine) Check() []CheckResult {
	results := make([]CheckResult, 0, len(e.cfg.Targets))
	for _, t := range e.cfg.Targets {
		e.log.Debug("checking target",
			zap.String("file", t.File),
			zap.String("key", t.Key),
			zap.Stringer("format", t.Format))

		_, current, err := e.readTarget(t)
		switch {
		case errors.Is(err, ErrKeyNotFound):
			results = append(results, CheckResult{Target: t, Status: CheckMissing, Err: err})
		case err != nil:
			results = append(results, CheckResult{Target: t, Status: CheckError, Err: err})
		case current == e.cfg.Version:
			results = append(results, CheckResult{Target: t, Status: CheckMatch})
		default:
			results = append(results, CheckResult{Target: t, Status: CheckMismatch, Found: current})
		}
	}
	return results
}

// Apply writes the canonical version into every target that does not already
// hold it. Re-running apply after convergence performs zero writes.
func (e *Engine) Apply() []ApplyResult {
	results := make([]ApplyResult, 0, len(e.cfg.Targets))
	for _, t := range e.cfg.Targets {
		results = append(results, e.applyTarget(t))
	}
	return results
}

func (e *Engine) applyTarget(t Target) ApplyResult {
	doc, current, err := e.readTarget(t)
	if err != nil {
		return ApplyResult{Target: t, Status: ApplyError, Err: err}
	}
	if current == e.cfg.Version {
		e.log.Debug("target already up to date", zap.String("file", t.File))
		return ApplyResult{Target: t, Status: ApplyUnchanged}
	}
	if err := doc.Set(t.Key, e.cfg.Version); err != nil {
		return ApplyResult{Target: t, Status: ApplyError, Err: fmt.Errorf("%s: %w", t.File, err)}
	}
	if err := e.writeFile(t.File, doc.Bytes()); err != nil {
		return ApplyResult{Target: t, Status: ApplyError, Err: err}
	}
	e.log.Debug("updated target",
		zap.String("file", t.File),
		zap.String("old", current),
		zap.String("new", e.cfg.Version))
	return ApplyResult{Target: t, Status: ApplyWritten, Old: current}
}

// readTarget parses the target file and reads its current value at the key.
func (e *Engine) readTarget(t Target) (Document, string, error) {
	data, err := afero.ReadFile(e.fs, t.File)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", t.File, err)
	}
	doc, err := ParseDocument(t.Format, data)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", t.File, err)
	}
	current, err := doc.Get(t.Key)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", t.File, err)
	}
	return doc, current, nil
}

// writeFile lands the new content atomically: the bytes go to a temporary
// file in the target's directory, which is then renamed over the original.
// A failure mid-write leaves the original file untouched.
func (e *Engine) writeFile(path string, data []byte) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmp, err := afero.TempFile(e.fs, filepath.Dir(path), ".versync-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := e.fs.Chmod(tmpName, info.Mode().Perm()); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := e.fs.Rename(tmpName, path); err != nil {
		_ = e.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Tag verifies every target matches the canonical version, checks repository
// state, and creates an annotated tag named by the config's tag prefix and
// version. It returns the created tag name.
func (e *Engine) Tag(g *Git) (string, error) {
	if err := g.EnsureRepository(); err != nil {
		return "", err
	}
	for _, r := range e.Check() {
		if r.Status == CheckError {
			return "", r.Err
		}
		if r.Status != CheckMatch {
			return "", ErrVersionMismatch
		}
	}
	if err := g.EnsureClean(); err != nil {
		return "", err
	}
	name := e.cfg.TagName()
	exists, err := g.TagExists(name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrTagExists, name)
	}
	if err := g.CreateTag(name, "Release "+e.cfg.Version); err != nil {
		return "", err
	}
	return name, nil
}

// CheckExitCode maps check results to the process exit code: 0 when all
// targets match, 1 when any diverges (mismatch or missing key), 2 when any
// target failed outright.
func CheckExitCode(results []CheckResult) int {
	code := ExitSuccess
	for _, r := range results {
		switch r.Status {
		case CheckError:
			return ExitError
		case CheckMismatch, CheckMissing:
			code = ExitMismatch
		}
	}
	return code
}

// ApplyExitCode maps apply results to the process exit code: 0 when every
// target was written or already current, 2 when any failed.
func ApplyExitCode(results []ApplyResult) int {
	for _, r := range results {
		if r.Status == ApplyError {
			return ExitError
		}
	}
	return ExitSuccess
}
