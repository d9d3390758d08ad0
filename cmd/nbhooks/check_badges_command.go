package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nbhooks/internal/badges"
	"nbhooks/internal/checks"
	"nbhooks/internal/config"
	"nbhooks/internal/header"
	"nbhooks/internal/hooks"
	"nbhooks/internal/logging"
	"nbhooks/internal/repo"
)

type badgeFlags struct {
	repoName    string
	repoOwner   string
	packageName string
	repoRoot    string
	noGit       bool
	fixHeader   bool
	version     string
	badgeOrder  string
	summary     bool
	lockDir     string
	lockTimeout time.Duration
}

func newCheckBadgesCommand(ctx *commandContext) *cobra.Command {
	var flags badgeFlags

	cmd := &cobra.Command{
		Use:   "check-badges [flags] FILE...",
		Short: "Check first-cell badges and the Colab header, repairing the header in place",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings, err := flags.apply(cmd, *cfg)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			runCtx := ctx.runContext(cmd)

			root, err := repo.Resolve(runCtx, repo.Options{Root: settings.Repo.Root, UseGit: settings.Repo.UseGit})
			if err != nil {
				return err
			}
			if root.GitErr != nil {
				logger.Debug("git root detection failed; using working directory", logging.Error(root.GitErr))
			}

			name := settings.Repo.Name
			if name == "" {
				name = root.Name()
			}
			pkg := settings.Repo.PackageName
			if pkg == "" {
				pkg = name
			}
			logger.Debug("resolved repository",
				slog.String("root", root.Path),
				slog.String("root_source", string(root.Source)),
				slog.String("owner", settings.Repo.Owner),
				slog.String("name", name),
				slog.String("package", pkg),
				slog.Int("files", len(args)))

			out := cmd.OutOrStdout()
			runner := hooks.NewRunner(out,
				hooks.WithLogger(logger),
				hooks.WithLockDir(flags.lockDir),
				hooks.WithLockTimeout(flags.lockTimeout))
			report := runner.CheckBadges(runCtx, args, hooks.BadgeOptions{
				Root:  root,
				Repo:  badges.Repo{Owner: settings.Repo.Owner, Name: name},
				Order: settings.BadgeOrder(),
				Header: header.Options{
					Package: pkg,
					Version: settings.Header.Version,
					Fix:     settings.Header.Fix,
				},
			})

			if err := hooks.WriteSummary(out, report); err != nil {
				return err
			}
			if flags.summary {
				fmt.Fprintln(out, renderReportTable(report))
			}
			return exitWith(report.ExitCode())
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.repoName, "repo-name", "", "GitHub repository name (default: base name of the repository root)")
	f.StringVar(&flags.repoOwner, "repo-owner", "", "GitHub account owning the repository (default: open-atmos)")
	f.StringVar(&flags.packageName, "package-name", "", "Package pinned in the Colab header (default: repository name)")
	f.StringVar(&flags.repoRoot, "repo-root", "", "Repository root for relative badge paths")
	f.BoolVar(&flags.noGit, "no-git", false, "Do not ask git for the repository root")
	f.BoolVar(&flags.fixHeader, "fix-header", false, "Rewrite a non-canonical Colab header instead of failing")
	f.StringVar(&flags.version, "pip-install-on-colab-version", "", "Version suffix for the header when the notebook has none (e.g. ==2.31)")
	f.StringVar(&flags.badgeOrder, "badge-order", "", "Badge comparison: strict or any")
	f.BoolVar(&flags.summary, "summary", false, "Print a per-file summary table")
	f.StringVar(&flags.lockDir, "lock-dir", "", "Directory for per-notebook lock files (default: system temp dir)")
	f.DurationVar(&flags.lockTimeout, "lock-timeout", 0, "How long to wait for another hook holding a notebook (default 10s)")
	return cmd
}

// apply overlays explicitly set flags on a copy of cfg.
func (f badgeFlags) apply(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	changed := cmd.Flags().Changed
	if changed("repo-name") {
		cfg.Repo.Name = strings.TrimSpace(f.repoName)
	}
	if changed("repo-owner") {
		cfg.Repo.Owner = strings.TrimSpace(f.repoOwner)
	}
	if changed("package-name") {
		cfg.Repo.PackageName = strings.TrimSpace(f.packageName)
	}
	if changed("repo-root") {
		root, err := config.ExpandPath(strings.TrimSpace(f.repoRoot))
		if err != nil {
			return cfg, fmt.Errorf("--repo-root: %w", err)
		}
		cfg.Repo.Root = root
	}
	if f.noGit {
		cfg.Repo.UseGit = false
	}
	if changed("fix-header") {
		cfg.Header.Fix = f.fixHeader
	}
	if changed("pip-install-on-colab-version") {
		cfg.Header.Version = strings.TrimSpace(f.version)
	}
	if changed("badge-order") {
		if _, ok := checks.ParseBadgeOrder(f.badgeOrder); !ok {
			return cfg, fmt.Errorf("--badge-order: unsupported value %q (want strict or any)", f.badgeOrder)
		}
		cfg.Badges.Order = f.badgeOrder
	}
	if cfg.Repo.Owner == "" {
		return cfg, fmt.Errorf("--repo-owner must not be empty")
	}
	return cfg, nil
}
