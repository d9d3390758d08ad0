package config

const (
	defaultRepoOwner   = "open-atmos"
	defaultUseGit      = true
	defaultBadgeOrder  = "strict"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	projectConfigName  = ".nbhooks.toml"
	defaultConfigPath  = "~/.config/nbhooks/config.toml"
	joblibStderrPrefix = "[Parallel(n_jobs="
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Repo: Repo{
			Owner:  defaultRepoOwner,
			UseGit: defaultUseGit,
		},
		Badges: Badges{
			Order: defaultBadgeOrder,
		},
		Outputs: Outputs{
			StderrAllowPrefixes: []string{joblibStderrPrefix},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
