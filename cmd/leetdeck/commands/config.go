package commands

import (
	"context"
	"time"

	"leetdeck/lib/configutil"
	"leetdeck/lib/scrapers/leetcode"
	"leetdeck/lib/serviceutil"
)

type Config struct {
	Session       configutil.Secret `json:"session"`
	SlugsFile     string            `json:"slugs_file"`
	DeckName      string            `json:"deck_name"`
	Output        string            `json:"output"`
	BaseUrl       string            `json:"base_url"`
	CachePath     string            `json:"cache_path"`
	CacheTtlHours int               `json:"cache_ttl_hours"`
	Concurrency   int               `json:"concurrency"`
	SkipMissing   bool              `json:"skip_missing"`
	SkipMalformed bool              `json:"skip_malformed"`
}

const sessionEnvVar = "LEETCODE_SESSION"

func readConfig(path string) Config {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Session.EnvVar == "" {
		cfg.Session.EnvVar = sessionEnvVar
	}
	if cfg.SlugsFile == "" {
		cfg.SlugsFile = "problems.txt"
	}
	if cfg.Output == "" {
		cfg.Output = "leetdeck.apkg"
	}
	if cfg.CacheTtlHours <= 0 {
		cfg.CacheTtlHours = 24 * 14
	}
	return cfg
}

func (c Config) cacheTtl() time.Duration {
	return time.Duration(c.CacheTtlHours) * time.Hour
}

// createClient builds the leetcode client and installs the session
// credential. Exits on failure, this only runs from command
// handlers.
func createClient(ctx context.Context, cfg Config) *leetcode.Client {
	session, err := cfg.Session.Resolve()
	if err != nil {
		serviceutil.Fatal("failed to resolve session credential", err)
	}

	client, err := leetcode.NewClient(leetcode.ClientOptions{
		BaseUrl: cfg.BaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize leetcode client", err)
	}

	err = client.LoginSession(ctx, session)
	if err != nil {
		serviceutil.Fatal("failed to install session credential", err)
	}

	return client
}
