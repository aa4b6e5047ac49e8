package version

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/unified-data-studio/uds-tools/logger"
)

// placeholder is substituted with the current version when rendering a
// target's replacement template.
const placeholder = "{version}"

// HeaderName is the result key used for the generated version header in
// UpdateAll result maps.
const HeaderName = "version-header"

// Target describes one dependent file holding a derived copy of the version:
// where it lives, how to find the copy, and what to write in its place.
// Targets are declared in the configuration, not in code.
type Target struct {
	Name    string
	File    string // relative to the project root
	Pattern string // Go regular expression locating the derived copy
	Replace string // replacement template containing the {version} placeholder
}

// Config carries everything the Manager needs to resolve files, so it can be
// pointed at a synthetic project tree in tests.
type Config struct {
	Root        string
	Name        string // application name embedded in the version header
	VersionFile string // canonical version file, relative to Root
	HeaderFile  string // generated version header, relative to Root
	Environment string // fallback environment indicator in the header
	Targets     []Target
}

// Manager maintains the canonical version and keeps the configured targets
// textually consistent with it. The canonical file is read once at
// construction; target files are opened and closed per operation with no
// cross-file atomicity (an interrupted batch leaves already-written targets
// at the new version and the rest untouched).
type Manager struct {
	cfg     Config
	version Version
}

// New reads and validates the canonical version file. A missing file is
// ErrNotFound and malformed content is ErrBadFormat; both abort before any
// propagation can run.
func New(cfg Config) (*Manager, error) {
	m := &Manager{cfg: cfg}

	path := m.versionPath()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	v, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.version = v

	return m, nil
}

// Version returns the current canonical version.
func (m *Manager) Version() Version {
	return m.version
}

func (m *Manager) versionPath() string {
	return filepath.Join(m.cfg.Root, m.cfg.VersionFile)
}

func (m *Manager) headerPath() string {
	return filepath.Join(m.cfg.Root, m.cfg.HeaderFile)
}

// Propagate rewrites every match of the target's pattern with its rendered
// replacement. A missing file (ErrNotFound) or absent pattern
// (ErrPatternNotFound) leaves the target untouched and is non-fatal to the
// caller. The substitution is stable under re-application.
func (m *Manager) Propagate(t Target) error {
	path := filepath.Join(m.cfg.Root, t.File)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	re, err := regexp.Compile(t.Pattern)
	if err != nil {
		return fmt.Errorf("target %s: bad pattern %q: %w", t.Name, t.Pattern, err)
	}

	content := string(b)
	if !re.MatchString(content) {
		return fmt.Errorf("%w: %q in %s", ErrPatternNotFound, t.Pattern, path)
	}

	rendered := strings.ReplaceAll(t.Replace, placeholder, m.version.String())
	content = re.ReplaceAllLiteralString(content, rendered)

	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

const headerTemplate = `// Auto-generated version file - DO NOT EDIT MANUALLY
// This file is updated automatically by the version manager

export const APP_VERSION = '%[1]s';
export const APP_NAME = '%[2]s';

// Version information for components
export const VERSION_INFO = {
  version: '%[1]s',
  name: '%[2]s',
  buildDate: '%[3]s',
  environment: process.env.NODE_ENV || '%[4]s',
};

export default APP_VERSION;
`

// WriteHeader regenerates the version header from scratch, embedding the
// current version, the application name, the generation timestamp, and an
// environment indicator. Existing content is never merged.
func (m *Manager) WriteHeader() error {
	path := m.headerPath()

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("creating header directory: %w", err)
	}

	content := fmt.Sprintf(
		headerTemplate,
		m.version,
		m.cfg.Name,
		time.Now().UTC().Format(time.RFC3339),
		m.cfg.Environment,
	)

	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		return fmt.Errorf("writing version header %s: %w", path, err)
	}

	return nil
}

// UpdateAll runs Propagate for every configured target in declaration order
// and then regenerates the version header. No failure short-circuits the
// batch: every target is attempted exactly once and the returned map holds
// one entry per target plus HeaderName. The returned error aggregates the
// individual failures for reporting; callers that tolerate partial failure
// can ignore it.
func (m *Manager) UpdateAll() (map[string]bool, error) {
	var errs *multierror.Error

	results := make(map[string]bool, len(m.cfg.Targets)+1)

	for _, t := range m.cfg.Targets {
		err := m.Propagate(t)
		if err != nil {
			logger.Warnf("Target %s not updated: %v", t.Name, err)
			errs = multierror.Append(errs, fmt.Errorf("target %s: %w", t.Name, err))
		} else {
			logger.Infof("Target %s updated to %s", t.Name, m.version)
		}
		results[t.Name] = err == nil
	}

	err := m.WriteHeader()
	if err != nil {
		logger.Warnf("Version header not written: %v", err)
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", HeaderName, err))
	} else {
		logger.Infof("Version header written to %s", m.cfg.HeaderFile)
	}
	results[HeaderName] = err == nil

	return results, errs.ErrorOrNil()
}

// Bump computes the next version for kind, persists it to the canonical file,
// and makes it the current in-memory value. An invalid kind leaves the file
// and the Manager unmodified. Dependent files are not touched; callers that
// want them updated run UpdateAll afterwards.
func (m *Manager) Bump(kind string) (Version, error) {
	next, err := m.version.Bump(kind)
	if err != nil {
		return Version{}, err
	}

	if err := os.WriteFile(m.versionPath(), []byte(next.String()+"\n"), 0666); err != nil {
		return Version{}, fmt.Errorf("writing %s: %w", m.versionPath(), err)
	}
	m.version = next

	return next, nil
}

// Info reports the current version and the resolved file locations.
type Info struct {
	Version     string
	Root        string
	VersionFile string
	HeaderFile  string
}

func (m *Manager) Info() Info {
	return Info{
		Version:     m.version.String(),
		Root:        m.cfg.Root,
		VersionFile: m.versionPath(),
		HeaderFile:  m.headerPath(),
	}
}
