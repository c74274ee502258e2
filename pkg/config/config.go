// Package config parses INI-style run configuration files with access
// tracking, so unused (likely misspelt) options can be reported.
//
// Files consist of [section] headers followed by "key: value" or
// "key = value" lines. "#" starts a comment. A header of the form
// [include other.cfg] splices in other files, relative to the including
// file and expanded as a glob.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	kerrors "multibody-kinematics/pkg/errors"
)

// Config is a parsed configuration.
type Config struct {
	mu       sync.RWMutex
	sections map[string]*Section
	order    []string

	accessedSections map[string]struct{}
}

// New creates an empty Config.
func New() *Config {
	return &Config{
		sections:         make(map[string]*Section),
		accessedSections: make(map[string]struct{}),
	}
}

// Load reads a configuration file, following include directives.
func Load(path string) (*Config, error) {
	c := New()
	if err := c.parseFile(path, make(map[string]bool)); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadString parses configuration text. Include directives are rejected.
func LoadString(data string) (*Config, error) {
	c := New()
	if err := c.parse(strings.NewReader(data), "<string>", nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) parseFile(path string, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return kerrors.Wrap(err, kerrors.ErrConfigSection, "invalid config path "+path)
	}
	if visited[abs] {
		return kerrors.New(kerrors.ErrConfigSection, "recursive include: "+path)
	}
	visited[abs] = true
	defer func() { visited[abs] = false }()

	f, err := os.Open(abs)
	if err != nil {
		return kerrors.Wrap(err, kerrors.ErrConfigSection, "unable to open "+path)
	}
	defer f.Close()

	include := func(spec string) error {
		glob := filepath.Join(filepath.Dir(abs), spec)
		matches, err := filepath.Glob(glob)
		if err != nil {
			return kerrors.Wrap(err, kerrors.ErrConfigSection, fmt.Sprintf("invalid include pattern %q", spec))
		}
		if len(matches) == 0 && !strings.ContainsAny(glob, "*?[") {
			return kerrors.New(kerrors.ErrConfigSection, "include file does not exist: "+glob)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if err := c.parseFile(m, visited); err != nil {
				return err
			}
		}
		return nil
	}
	return c.parse(f, path, include)
}

// parse reads sections from r. include handles [include ...] headers; a
// nil include rejects them.
func (c *Config) parse(r io.Reader, name string, include func(spec string) error) error {
	var section string
	var options map[string]string
	flush := func() {
		if section != "" {
			c.addSection(section, options)
		}
		section, options = "", nil
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			header := strings.TrimSpace(line[1 : len(line)-1])
			if header == "" {
				return kerrors.New(kerrors.ErrConfigSection,
					fmt.Sprintf("empty section header at line %d in %s", lineNum, name))
			}
			if spec, ok := strings.CutPrefix(header, "include "); ok {
				spec = strings.TrimSpace(spec)
				if include == nil || spec == "" {
					return kerrors.New(kerrors.ErrConfigSection,
						fmt.Sprintf("unsupported include at line %d in %s", lineNum, name))
				}
				if err := include(spec); err != nil {
					return err
				}
				continue
			}
			section = header
			options = make(map[string]string)
			continue
		}

		// options before the first section are ignored
		if section == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			key, value, ok = strings.Cut(line, "=")
		}
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		options[key] = strings.TrimSpace(value)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return kerrors.Wrap(err, kerrors.ErrConfigSection, "error reading "+name)
	}
	return nil
}

func (c *Config) addSection(name string, options map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a repeated section extends the earlier one
	if existing, ok := c.sections[name]; ok {
		for k, v := range options {
			existing.options[strings.ToLower(k)] = v
		}
		return
	}
	c.sections[name] = newSection(name, options)
	c.order = append(c.order, name)
}

// GetSection returns the named section.
func (c *Config) GetSection(name string) (*Section, error) {
	if sec := c.GetSectionOptional(name); sec != nil {
		return sec, nil
	}
	return nil, ErrMissingSection(name)
}

// GetSectionOptional returns the named section, or nil.
func (c *Config) GetSectionOptional(name string) *Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	sec, ok := c.sections[name]
	if ok {
		c.accessedSections[name] = struct{}{}
	}
	return sec
}

func (c *Config) HasSection(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.sections[name]
	return ok
}

// GetSectionNames returns section names in file order.
func (c *Config) GetSectionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// GetUnusedSections lists sections nobody asked for.
func (c *Config) GetUnusedSections() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []string
	for name := range c.sections {
		if _, ok := c.accessedSections[name]; !ok {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// CheckUnused reports unused sections and options as a validation error.
func (c *Config) CheckUnused() error {
	var problems []string
	if unused := c.GetUnusedSections(); len(unused) > 0 {
		problems = append(problems, fmt.Sprintf("unused sections %v", unused))
	}

	c.mu.RLock()
	for _, name := range c.order {
		if unused := c.sections[name].GetUnusedOptions(); len(unused) > 0 {
			problems = append(problems, fmt.Sprintf("[%s]: unused options %v", name, unused))
		}
	}
	c.mu.RUnlock()

	if len(problems) > 0 {
		return kerrors.New(kerrors.ErrConfigValidation, strings.Join(problems, "; "))
	}
	return nil
}

// Merge overlays other onto c. Options in other win.
func (c *Config) Merge(other *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	for _, name := range other.order {
		src := other.sections[name]
		if existing, ok := c.sections[name]; ok {
			for k, v := range src.options {
				existing.options[k] = v
			}
			continue
		}
		c.sections[name] = newSection(name, src.options)
		c.order = append(c.order, name)
	}
}
