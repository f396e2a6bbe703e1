// Package validator turns command-line file arguments into the file list the
// index builder consumes. Arguments may be doublestar glob patterns; every
// resulting path must be an existing, non-empty, regular .txt file, and
// duplicates are dropped keeping the first occurrence.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

// Extension is the only accepted file extension.
const Extension = ".txt"

// Rejection explains why one argument or path was not accepted.
type Rejection struct {
	Path   string
	Reason string
}

// ValidationError lists every rejected path when nothing valid remains.
type ValidationError struct {
	Rejected []Rejection
}

func (e *ValidationError) Error() string {
	if len(e.Rejected) == 0 {
		return "no files provided"
	}
	parts := make([]string, 0, len(e.Rejected))
	for _, r := range e.Rejected {
		parts = append(parts, fmt.Sprintf("%s:%s", r.Path, r.Reason))
	}
	return "no valid files: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ValidateFiles expands and checks args, preserving argument order. It
// returns a *ValidationError when no file survives.
func ValidateFiles(args []string) ([]string, []Rejection, error) {
	var (
		files    []string
		rejected []Rejection
		seen     = make(map[string]struct{})
	)
	for _, arg := range args {
		paths, err := expand(arg)
		if err != nil {
			rejected = append(rejected, Rejection{Path: arg, Reason: err.Error()})
			continue
		}
		for _, p := range paths {
			if reason := checkFile(p); reason != "" {
				rejected = append(rejected, Rejection{Path: p, Reason: reason})
				continue
			}
			key := filepath.Clean(p)
			if _, dup := seen[key]; dup {
				rejected = append(rejected, Rejection{Path: p, Reason: "duplicate file"})
				continue
			}
			seen[key] = struct{}{}
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil, rejected, &ValidationError{Rejected: rejected}
	}
	return files, rejected, nil
}

func expand(arg string) ([]string, error) {
	if !hasMeta(arg) {
		return []string{arg}, nil
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
		return nil, fmt.Errorf("invalid glob pattern")
	}
	matches, err := doublestar.FilepathGlob(arg)
	if err != nil {
		return nil, fmt.Errorf("expanding pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pattern matched no files")
	}
	return matches, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func checkFile(p string) string {
	if filepath.Ext(p) != Extension {
		return "not a " + Extension + " file"
	}
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "file does not exist"
		}
		return "cannot stat file"
	}
	if !info.Mode().IsRegular() {
		return "not a regular file"
	}
	if info.Size() == 0 {
		return "empty file"
	}
	return ""
}
