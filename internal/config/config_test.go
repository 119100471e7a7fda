package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  host: 127.0.0.1
  port: 3306
  user: radar
  name: startup_radar
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, want default mysql", cfg.Database.Driver)
	}
	if cfg.OpenAI.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want default 30", cfg.OpenAI.TimeoutSeconds)
	}
	if cfg.Recommend.FeedSize != 20 || cfg.Recommend.ColdStartThreshold != 10 {
		t.Errorf("recommend defaults = %+v", cfg.Recommend)
	}
	if cfg.Recommend.DiversityRatio != 0.2 {
		t.Errorf("diversity ratio = %v, want 0.2", cfg.Recommend.DiversityRatio)
	}
	if cfg.Scoring.Weights.RawMax != 140 {
		t.Errorf("weights not defaulted: %+v", cfg.Scoring.Weights)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9000
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: radar
  password: secret
  name: radar
  sslMode: require
scoring:
  minConfidence: 35
  allowCrossTopic: true
  weights:
    raw_max: 150
    match_scale: 0.5
recommend:
  diversityRatio: 0.4
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if !cfg.Scoring.AllowCrossTopic || cfg.Scoring.MinConfidence != 35 {
		t.Errorf("scoring = %+v", cfg.Scoring)
	}
	// explicit weights survive defaulting
	if cfg.Scoring.Weights.RawMax != 150 || cfg.Scoring.Weights.MatchScale != 0.5 {
		t.Errorf("weights = %+v", cfg.Scoring.Weights)
	}
	if cfg.Recommend.DiversityRatio != 0.4 {
		t.Errorf("diversity ratio = %v", cfg.Recommend.DiversityRatio)
	}
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  host: db.internal
  port: 5432
  user: radar
  password: secret
  name: radar
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	mysql := cfg.MySQLDSN()
	if !strings.Contains(mysql, "radar:secret@tcp(db.internal:5432)/radar") {
		t.Errorf("mysql dsn = %q", mysql)
	}
	if !strings.Contains(mysql, "parseTime=true") {
		t.Errorf("mysql dsn missing parseTime: %q", mysql)
	}

	pg := cfg.PostgresDSN()
	for _, part := range []string{"host=db.internal", "port=5432", "dbname=radar", "sslmode=disable"} {
		if !strings.Contains(pg, part) {
			t.Errorf("postgres dsn %q missing %q", pg, part)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
