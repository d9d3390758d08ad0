package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// CheckGit verifies that the git binary is on PATH and runs.
func CheckGit(ctx context.Context, binary string) Result {
	const name = "Git"

	path, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found (root falls back to working directory)", binary)}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(checkCtx, path, "--version").Output()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: strings.TrimSpace(string(out))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRepoIdentity verifies that badge URLs can be built.
func CheckRepoIdentity(owner, name string) Result {
	const check = "Badge repository"
	switch {
	case strings.TrimSpace(owner) == "":
		return Result{Name: check, Detail: "owner missing"}
	case strings.TrimSpace(name) == "" || name == "/" || name == ".":
		return Result{Name: check, Detail: "name missing"}
	}
	return Result{Name: check, Passed: true, Detail: fmt.Sprintf("github.com/%s/%s", owner, name)}
}
