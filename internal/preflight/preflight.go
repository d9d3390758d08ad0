package preflight

import (
	"context"

	"nbhooks/internal/config"
	"nbhooks/internal/repo"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the preflight checks applicable to cfg. The git check is
// only run when root detection uses git.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Repo.UseGit && cfg.Repo.Root == "" {
		results = append(results, CheckGit(ctx, "git"))
	}

	root, err := repo.Resolve(ctx, repo.Options{Root: cfg.Repo.Root, UseGit: cfg.Repo.UseGit})
	if err != nil {
		results = append(results, Result{Name: "Repository root", Detail: err.Error()})
		return results
	}
	results = append(results, CheckDirectoryAccess("Repository root", root.Path))

	name := cfg.Repo.Name
	if name == "" {
		name = root.Name()
	}
	results = append(results, CheckRepoIdentity(cfg.Repo.Owner, name))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
