// Package repo resolves the repository root that badge URLs are relative to.
package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Source describes where a resolved root came from.
type Source string

const (
	SourceFlag Source = "flag"
	SourceGit  Source = "git"
	SourceCwd  Source = "cwd"
)

// Options control root resolution.
type Options struct {
	// Root, when set, is used as-is.
	Root string
	// UseGit asks git for the work tree top level before falling back to
	// the working directory.
	UseGit bool
	// GitBinary overrides the git executable; defaults to "git".
	GitBinary string
}

// Root is a resolved repository root.
type Root struct {
	Path   string
	Source Source
	// GitErr records why git resolution failed when Source is SourceCwd.
	GitErr error
}

// Name returns the base name of the root directory, which doubles as the
// default repository name.
func (r Root) Name() string {
	return filepath.Base(r.Path)
}

// Resolve determines the repository root: an explicit path first, then git
// metadata when enabled, then the current working directory. A git failure is
// not an error; it is recorded on the cwd fallback for logging.
func Resolve(ctx context.Context, opts Options) (Root, error) {
	if root := strings.TrimSpace(opts.Root); root != "" {
		abs, err := canonical(root)
		if err != nil {
			return Root{}, fmt.Errorf("resolve repo root %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return Root{}, fmt.Errorf("stat repo root: %w", err)
		}
		if !info.IsDir() {
			return Root{}, fmt.Errorf("repo root %s is not a directory", abs)
		}
		return Root{Path: abs, Source: SourceFlag}, nil
	}

	var gitErr error
	if opts.UseGit {
		top, err := gitTopLevel(ctx, opts.GitBinary)
		if err == nil {
			return Root{Path: top, Source: SourceGit}, nil
		}
		gitErr = err
	}

	wd, err := os.Getwd()
	if err != nil {
		return Root{}, fmt.Errorf("determine working directory: %w", err)
	}
	abs, err := canonical(wd)
	if err != nil {
		return Root{}, err
	}
	return Root{Path: abs, Source: SourceCwd, GitErr: gitErr}, nil
}

// RelativePath returns file relative to the root with forward slashes, as it
// appears in badge URLs. Files outside the root yield a "../" path rather
// than an error.
func (r Root) RelativePath(file string) (string, error) {
	abs, err := canonical(file)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", file, err)
	}
	rel, err := filepath.Rel(r.Path, abs)
	if err != nil {
		return "", fmt.Errorf("relative path of %q: %w", file, err)
	}
	return filepath.ToSlash(rel), nil
}

func gitTopLevel(ctx context.Context, binary string) (string, error) {
	if strings.TrimSpace(binary) == "" {
		binary = "git"
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "rev-parse", "--show-toplevel")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("git rev-parse: %s: %w", detail, err)
		}
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	top := strings.TrimSpace(stdout.String())
	if top == "" {
		return "", errors.New("git rev-parse: empty top level")
	}
	return canonical(top)
}

// canonical makes p absolute and resolves symlinks when the path exists, so
// that a symlinked working directory and git's physical path compare equal.
func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
