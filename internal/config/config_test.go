package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.SkillThreshold = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for skill threshold above 1")
	}

	cfg = validConfig()
	cfg.Matching.ResponsibilityThreshold = 2

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for responsibility threshold above 1")
	}
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.Weights.JobTitle = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestValidate_VectorizerUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding = EmbeddingConfig{
		Providers: map[string]ProviderConfig{
			"nebius": {APIKey: "test-key", BaseURL: "https://api.example.com/v1/"},
		},
		Vectorizers: map[string]VectorizerConfig{
			"default": {Provider: "missing", Model: "Qwen/Qwen3-Embedding-8B", Dimensions: 1024},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for vectorizer referencing unknown provider")
	}

	expected := `embedding.vectorizers.default references unknown provider "missing"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_VectorizerKnownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding = EmbeddingConfig{
		Providers: map[string]ProviderConfig{
			"nebius": {APIKey: "test-key"},
		},
		Vectorizers: map[string]VectorizerConfig{
			"default": {Provider: "nebius", Model: "Qwen/Qwen3-Embedding-8B", Dimensions: 1024},
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Matching.SkillThreshold != 0.70 {
		t.Errorf("expected SkillThreshold=0.70, got %g", cfg.Matching.SkillThreshold)
	}
	if cfg.Matching.ResponsibilityThreshold != 0.60 {
		t.Errorf("expected ResponsibilityThreshold=0.60, got %g", cfg.Matching.ResponsibilityThreshold)
	}
	if cfg.Matching.Alternatives != 3 {
		t.Errorf("expected Alternatives=3, got %d", cfg.Matching.Alternatives)
	}
	if cfg.Matching.RankWorkers != 4 {
		t.Errorf("expected RankWorkers=4, got %d", cfg.Matching.RankWorkers)
	}
	if cfg.Matching.MaxBatchSize != 100 {
		t.Errorf("expected MaxBatchSize=100, got %d", cfg.Matching.MaxBatchSize)
	}
	w := cfg.Matching.Weights
	if w.Skills != 80 || w.Responsibilities != 15 || w.JobTitle != 2.5 || w.Experience != 2.5 {
		t.Errorf("unexpected default weights: %+v", w)
	}
	if cfg.Storage.KeyPrefix != "matchdex:" {
		t.Errorf("expected KeyPrefix='matchdex:', got %q", cfg.Storage.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Matching: MatchingConfig{
			SkillThreshold:          0.80,
			ResponsibilityThreshold: 0.50,
			Alternatives:            5,
			RankWorkers:             16,
			MaxBatchSize:            250,
			Weights:                 WeightsConfig{Skills: 1, Responsibilities: 1, JobTitle: 1, Experience: 1},
		},
		Storage: StorageConfig{KeyPrefix: "custom:"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Matching.SkillThreshold != 0.80 {
		t.Errorf("expected SkillThreshold=0.80, got %g", cfg.Matching.SkillThreshold)
	}
	if cfg.Matching.Weights.Skills != 1 {
		t.Errorf("expected Weights.Skills=1, got %g", cfg.Matching.Weights.Skills)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
}
