package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  bot_token: "123:abc"
  targets:
    - chat_id: "-100200300"
redis:
  addr: "localhost:6379"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Novelty.HistorySize != 50 {
		t.Fatalf("history = %d", cfg.Novelty.HistorySize)
	}
	if cfg.Redis.StateKey != "delistradar:notified" {
		t.Fatalf("state key = %q", cfg.Redis.StateKey)
	}
	if cfg.Binance.Channel != "binance_announcements" {
		t.Fatalf("channel = %q", cfg.Binance.Channel)
	}
}

func TestLoadMissingTokenFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  targets:
    - chat_id: "1"
redis:
  addr: "localhost:6379"
`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadNoTargetsFails(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
redis:
  addr: "localhost:6379"
`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadKafkaEnabledNeedsBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
kafka:
  enabled: true
`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestParseChatTargetsStrings(t *testing.T) {
	targets, err := ParseChatTargets(`["-100", "-200"]`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(targets) != 2 || targets[0].ChatID != "-100" || targets[1].ChatID != "-200" {
		t.Fatalf("targets = %+v", targets)
	}
}

func TestParseChatTargetsObjects(t *testing.T) {
	targets, err := ParseChatTargets(`[{"chat_id":"-100","message_thread_id":7}]`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(targets) != 1 || targets[0].ChatID != "-100" || targets[0].ThreadID != 7 {
		t.Fatalf("targets = %+v", targets)
	}
}

func TestParseChatTargetsRejectsEmptyID(t *testing.T) {
	if _, err := ParseChatTargets(`[""]`); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseChatTargets(`[{"message_thread_id":7}]`); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "999:zzz")
	t.Setenv("CHAT_IDS", `["-42"]`)
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "999:zzz" {
		t.Fatalf("token = %q", cfg.Telegram.BotToken)
	}
	if len(cfg.Telegram.Targets) != 1 || cfg.Telegram.Targets[0].ChatID != "-42" {
		t.Fatalf("targets = %+v", cfg.Telegram.Targets)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("redis = %q", cfg.Redis.Addr)
	}
}
