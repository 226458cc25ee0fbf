// Package project ties the configuration, validation and compilers to a
// project directory on disk.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/gersonkurz/pybuilder/internal/codec"
	"github.com/gersonkurz/pybuilder/internal/config"
	"github.com/gersonkurz/pybuilder/internal/installer"
	"github.com/gersonkurz/pybuilder/internal/logger"
	"github.com/gersonkurz/pybuilder/internal/script"
	"github.com/gersonkurz/pybuilder/internal/template"
	"github.com/gersonkurz/pybuilder/internal/validate"
)

// DefaultConfigName is the config file name inside a project directory.
const DefaultConfigName = "build_config.yaml"

// LockName is the lock file that keeps two pybuilder processes from
// working on the same directory.
const LockName = ".pybuilder.lock"

// ErrBusy is returned by Open when another process holds the project lock.
var ErrBusy = errors.New("project is in use by another pybuilder process")

// Project is an opened project directory. It owns the in-memory record
// until Close.
type Project struct {
	Dir string

	fs         afero.Fs
	configName string
	hostOS     string
	lockPath   string
	renderer   *template.Renderer
	log        logger.Logger

	lock   *flock.Flock
	record *config.Record
}

// Option configures Open.
type Option func(*Project)

// WithFs sets the filesystem holding the project. The lock file is always
// taken on the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(p *Project) { p.fs = fs }
}

// WithConfigName overrides the config file name.
func WithConfigName(name string) Option {
	return func(p *Project) {
		if name != "" {
			p.configName = name
		}
	}
}

// WithHostOS sets the GOOS used for compiler defaults and script permissions.
func WithHostOS(goos string) Option {
	return func(p *Project) { p.hostOS = goos }
}

// WithLockPath places the lock file somewhere other than the project
// directory.
func WithLockPath(path string) Option {
	return func(p *Project) { p.lockPath = path }
}

// WithRenderer sets the template renderer used for generated files.
func WithRenderer(r *template.Renderer) Option {
	return func(p *Project) { p.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Project) { p.log = l }
}

// Open locks dir and loads its configuration. A missing config file yields
// the defaults; an unreadable one is logged and also yields the defaults.
func Open(dir string, opts ...Option) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	p := &Project{
		Dir:        abs,
		fs:         afero.NewOsFs(),
		configName: DefaultConfigName,
		hostOS:     runtime.GOOS,
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.lockPath == "" {
		p.lockPath = filepath.Join(abs, LockName)
	}
	if p.renderer == nil {
		p.renderer = template.NewRenderer("", template.WithFs(p.fs))
	}

	info, err := p.fs.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening project: %s is not a directory", abs)
	}

	p.lock = flock.New(p.lockPath)
	locked, err := p.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking project: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrBusy, abs)
	}

	p.record = p.load()
	return p, nil
}

func (p *Project) load() *config.Record {
	decodeOpts := []codec.Option{codec.WithHostOS(p.hostOS), codec.WithLogger(p.log)}

	data, err := afero.ReadFile(p.fs, p.ConfigPath())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.log.Warn("cannot read config, using defaults", "path", p.ConfigPath(), "error", err)
		}
		return codec.Decode("", decodeOpts...)
	}
	p.log.Debug("config loaded", "path", p.ConfigPath(), "bytes", len(data))
	return codec.Decode(string(data), decodeOpts...)
}

// Close releases the project lock.
func (p *Project) Close() error {
	if p.lock == nil {
		return nil
	}
	return p.lock.Unlock()
}

// ConfigPath is the absolute path of the config file.
func (p *Project) ConfigPath() string {
	return p.Path(p.configName)
}

// Path returns name joined to the project directory.
func (p *Project) Path(name string) string {
	return filepath.Join(p.Dir, name)
}

// artifactPath places a generated file directly inside the project
// directory. Names carrying a directory part are rejected.
func (p *Project) artifactPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("refusing to write %q outside %s", name, p.Dir)
	}
	return p.Path(name), nil
}

// Record returns the project's record. Changes take effect on Save.
func (p *Project) Record() *config.Record {
	return p.record
}

// Exists reports whether the config file is present on disk.
func (p *Project) Exists() bool {
	ok, err := afero.Exists(p.fs, p.ConfigPath())
	return err == nil && ok
}

// Validate checks the record against the project directory.
func (p *Project) Validate() error {
	return validate.Validate(p.fs, p.record, p.Dir)
}

// Save validates the record and writes the config file.
func (p *Project) Save() error {
	if err := p.Validate(); err != nil {
		return err
	}
	return p.write()
}

// Create writes the current record without validating it. This is the one
// save that skips validation, so a fresh directory can be initialized
// before its entry file exists. An existing config is only replaced when
// overwrite is set.
func (p *Project) Create(overwrite bool) error {
	if p.Exists() && !overwrite {
		return fmt.Errorf("%s already exists", p.ConfigPath())
	}
	return p.write()
}

func (p *Project) write() error {
	if err := afero.WriteFile(p.fs, p.ConfigPath(), []byte(codec.Encode(p.record)), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	p.log.Debug("config saved", "path", p.ConfigPath())
	return nil
}

// GenerateBuildScript validates the record, compiles the build script and
// writes it into the project directory.
func (p *Project) GenerateBuildScript() (*script.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res, err := script.Compile(p.record, script.WithRenderer(p.renderer), script.WithLogger(p.log))
	if err != nil {
		return nil, err
	}

	path, err := p.artifactPath(res.Name)
	if err != nil {
		return nil, err
	}
	if err := afero.WriteFile(p.fs, path, []byte(res.Text), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Name, err)
	}
	if p.hostOS != "windows" {
		if err := p.fs.Chmod(path, 0o755); err != nil {
			return nil, fmt.Errorf("making %s executable: %w", res.Name, err)
		}
	}
	p.log.Info("build script written", "path", path, "args", len(res.Args))
	return res, nil
}

// GenerateInstaller validates the record, makes sure it has an AppId (saving
// a new one before anything else is written), compiles the installer
// script and writes it into the project directory. created reports whether
// a new AppId was generated.
func (p *Project) GenerateInstaller() (res *installer.Result, created bool, err error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	if err := validate.ValidateInstaller(p.record); err != nil {
		return nil, false, err
	}

	id, created, err := installer.EnsureIdentity(p.record, installer.PersisterFunc(func(*config.Record) error {
		return p.write()
	}))
	if err != nil {
		return nil, false, err
	}
	if created {
		p.log.Info("installer AppId generated", "appid", id)
	}

	res, err = installer.Compile(p.record, installer.WithRenderer(p.renderer))
	if err != nil {
		return nil, created, err
	}

	path, err := p.artifactPath(res.Name)
	if err != nil {
		return nil, created, err
	}
	if err := afero.WriteFile(p.fs, path, []byte(res.Text), 0o644); err != nil {
		return nil, created, fmt.Errorf("writing %s: %w", res.Name, err)
	}
	p.log.Info("installer script written", "path", path)
	return res, created, nil
}
