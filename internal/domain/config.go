package domain

// KeyPrefix namespaces all matchdex keys in the key-value store.
const KeyPrefix = "matchdex:"

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model               string
	Dimensions          int
	ContextWindowTokens int
	DistanceMetric      string
}

// DefaultVectorConfig returns the default configuration tuned for Qwen3-Embedding-8B.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:               "Qwen3-Embedding-8B",
		Dimensions:          1024,
		ContextWindowTokens: 41000,
		DistanceMetric:      "cosine",
	}
}
