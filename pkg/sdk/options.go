package matchdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	embedder Embedder
	openai   *openAIConfig
	noCache  bool

	weights              *Weights
	skillThreshold       float64
	responsibilityThresh float64
	alternatives         int
	rankWorkers          int
	profileTTL           time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

type openAIConfig struct {
	apiKey     string
	baseURL    string
	model      string
	dimensions int
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithOpenAI configures an OpenAI-compatible embedding provider.
// An empty baseURL uses the OpenAI API; model and dimensions fall back to
// the built-in defaults when zero.
func WithOpenAI(apiKey, baseURL, model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.openai = &openAIConfig{
			apiKey:     apiKey,
			baseURL:    baseURL,
			model:      model,
			dimensions: dimensions,
		}
	})
}

// WithEmbedder sets a custom text embedding provider. Takes precedence over
// WithOpenAI.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithoutEmbeddingCache disables the database-backed embedding cache.
// By default every embedding is cached under a model-and-content key.
func WithoutEmbeddingCache() Option {
	return optionFunc(func(c *clientConfig) {
		c.noCache = true
	})
}

// WithWeights sets the default category weights for Match and Rank calls
// that do not carry their own.
func WithWeights(w Weights) Option {
	return optionFunc(func(c *clientConfig) {
		c.weights = &w
	})
}

// WithThresholds sets the cosine similarity thresholds above which a skill
// or responsibility pairing counts as matched. Defaults: 0.70 and 0.60.
func WithThresholds(skill, responsibility float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.skillThreshold = skill
		c.responsibilityThresh = responsibility
	})
}

// WithAlternatives sets how many near-miss candidate items are reported per
// requirement. Default: 3.
func WithAlternatives(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.alternatives = k
	})
}

// WithRankWorkers sets the comparison pool size for Rank. Default: 4.
func WithRankWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.rankWorkers = n
	})
}

// WithProfileTTL sets an expiry on stored profiles. Zero (the default)
// stores profiles without expiry.
func WithProfileTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.profileTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
