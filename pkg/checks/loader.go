// Package checks builds readiness checks from a YAML checks file.
//
// A checks file lists probes against the dependencies the service needs:
//
//	checks:
//	  - name: database
//	    type: tcp
//	    address: localhost:5432
//	    timeout: 2s
//	  - name: cache
//	    type: redis
//	    address: localhost:6379
//	  - name: upstream
//	    type: http
//	    url: http://localhost:8080/ping
//	    expect_status: 200
package checks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NZ-WEB/go-monitoring/internal/readiness"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"gopkg.in/yaml.v3"
)

// Set is the result of loading a checks file. Close releases any
// connections held by the checks.
type Set struct {
	Checks  []readiness.Check
	closers []io.Closer
}

// Register adds every check in the set to registry, in file order.
func (s *Set) Register(registry *readiness.Registry) {
	for _, check := range s.Checks {
		registry.Register(check)
	}
}

// Close releases resources held by the checks.
func (s *Set) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// ResolvePath expands a leading "~/" against the working directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Join(wd, path[2:]), nil
}

// Load reads the checks file at path and builds its checks.
func Load(path string) (*Set, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read checks file %s: %w", resolved, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("checks file %s: %w", resolved, err)
	}
	logger.Infof("Loaded %d readiness check(s) from %s", len(set.Checks), resolved)
	return set, nil
}

// Parse builds checks from the YAML document in data. Nothing is returned
// when any entry is invalid.
func Parse(data []byte) (*Set, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	set := &Set{Checks: make([]readiness.Check, 0, len(file.Checks))}
	for i, spec := range file.Checks {
		check, closer, err := Build(spec)
		if err != nil {
			_ = set.Close()
			return nil, fmt.Errorf("check #%d: %w", i+1, err)
		}
		set.Checks = append(set.Checks, check)
		if closer != nil {
			set.closers = append(set.closers, closer)
		}
	}
	return set, nil
}

// Build turns one spec into a readiness check. The closer is non-nil when
// the check holds connections.
func Build(spec Spec) (readiness.Check, io.Closer, error) {
	if spec.Name == "" {
		return readiness.Check{}, nil, fmt.Errorf("%w: name", ErrMissingField)
	}

	switch strings.ToLower(spec.Type) {
	case TypeTCP:
		if spec.Address == "" {
			return readiness.Check{}, nil, fmt.Errorf("%w: %s: address", ErrMissingField, spec.Name)
		}
		return readiness.Check{Name: spec.Name, Func: TCP(spec.Address, spec.timeout())}, nil, nil

	case TypeHTTP:
		if spec.URL == "" {
			return readiness.Check{}, nil, fmt.Errorf("%w: %s: url", ErrMissingField, spec.Name)
		}
		return readiness.Check{Name: spec.Name, Func: HTTP(spec.URL, spec.ExpectStatus, spec.timeout())}, nil, nil

	case TypeRedis:
		if spec.Address == "" {
			return readiness.Check{}, nil, fmt.Errorf("%w: %s: address", ErrMissingField, spec.Name)
		}
		rc := NewRedisCheck(spec.Address, spec.Password, spec.DB, spec.timeout())
		return readiness.Check{Name: spec.Name, Func: rc.Check}, rc, nil

	default:
		return readiness.Check{}, nil, fmt.Errorf("%w: %s: %q", ErrUnknownType, spec.Name, spec.Type)
	}
}
