package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("SLACK_SIGNING_SECRET", "signing-secret")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresSlackSecrets(t *testing.T) {
	t.Run("signing secret", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SLACK_SIGNING_SECRET", "")
		t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SLACK_SIGNING_SECRET") {
			t.Fatalf("expected SLACK_SIGNING_SECRET error, got %v", err)
		}
	})

	t.Run("bot token", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SLACK_SIGNING_SECRET", "signing-secret")
		t.Setenv("SLACK_BOT_TOKEN", "")

		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SLACK_BOT_TOKEN") {
			t.Fatalf("expected SLACK_BOT_TOKEN error, got %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FPLLeagueID != DefaultLeagueID {
		t.Fatalf("unexpected FPLLeagueID: %d", cfg.FPLLeagueID)
	}
	if cfg.SlackReplayWindow != 5*time.Minute {
		t.Fatalf("unexpected SlackReplayWindow: %s", cfg.SlackReplayWindow)
	}
	if cfg.SlackStrictEventVerification {
		t.Fatalf("expected event_callback gating to be disabled by default")
	}
	if cfg.FPLBaseURL != "https://fantasy.premierleague.com/api" {
		t.Fatalf("unexpected FPLBaseURL: %q", cfg.FPLBaseURL)
	}
	if cfg.SlackAPIBaseURL != "https://slack.com/api" {
		t.Fatalf("unexpected SlackAPIBaseURL: %q", cfg.SlackAPIBaseURL)
	}
	if cfg.FPLEntryConcurrency != 16 {
		t.Fatalf("unexpected FPLEntryConcurrency: %d", cfg.FPLEntryConcurrency)
	}
}

func TestLoad_FPLParsing(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("FPL_LEAGUE_ID", "12345")
	t.Setenv("FPL_TIMEOUT", "4s")
	t.Setenv("FPL_ENTRY_CONCURRENCY", "3")
	t.Setenv("FPL_CIRCUIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FPLLeagueID != 12345 {
		t.Fatalf("unexpected FPLLeagueID: %d", cfg.FPLLeagueID)
	}
	if cfg.FPLTimeout != 4*time.Second {
		t.Fatalf("unexpected FPLTimeout: %s", cfg.FPLTimeout)
	}
	if cfg.FPLEntryConcurrency != 3 {
		t.Fatalf("unexpected FPLEntryConcurrency: %d", cfg.FPLEntryConcurrency)
	}
	if cfg.FPLCircuitEnabled {
		t.Fatalf("expected FPLCircuitEnabled=false")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"FPL_LEAGUE_ID":                   "-1",
		"FPL_ENTRY_CONCURRENCY":           "0",
		"FPL_TIMEOUT":                     "soon",
		"SLACK_REPLAY_WINDOW":             "0s",
		"SLACK_STRICT_EVENT_VERIFICATION": "maybe",
		"WORKER_POOL_SIZE":                "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredSecrets(t)
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestConfig_RedactedHidesSecrets(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	out := cfg.Redacted()
	if strings.Contains(out, "signing-secret") || strings.Contains(out, "xoxb-test") {
		t.Fatalf("Redacted leaked a secret: %s", out)
	}
	if !strings.Contains(out, "bot_token=[set]") {
		t.Fatalf("expected bot token presence marker, got %s", out)
	}
}
