package mindrisk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindrisk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(ModelDirEnv, "")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialFile(t *testing.T) {
	t.Setenv(ModelDirEnv, "")
	path := writeConfig(t, `
model_type: random_forest
forest:
  n_estimators: 25
vectorizer:
  ngram_min: 1
  ngram_max: 1
  max_features: 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, RandomForestModel, cfg.ModelType)
	assert.Equal(t, 25, cfg.Forest.NEstimators)
	assert.Equal(t, DefaultForestConfig().MaxDepth, cfg.Forest.MaxDepth, "unset keys keep defaults")
	assert.Equal(t, 500, cfg.Vectorizer.MaxFeatures)
	assert.Equal(t, 1, cfg.Vectorizer.NGramMax)
	assert.Equal(t, 0.95, cfg.Vectorizer.MaxDF)
	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ModelDirEnv, dir)
	path := writeConfig(t, "model_dir: elsewhere\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ModelDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv(ModelDirEnv, "")
	tests := []struct {
		body string
		want string
		desc string
	}{
		{"model_type: svm\n", "unknown model type", "unknown model type"},
		{"test_size: 1.0\n", "test_size", "test size out of range"},
		{"vectorizer:\n  ngram_min: 3\n  ngram_max: 2\n", "ngram range", "inverted ngram range"},
		{"logistic:\n  c: -1\n", "logistic c", "negative regularization"},
		{"boosting:\n  learning_rate: -0.1\n", "learning_rate", "negative learning rate"},
		{"model_type: [", "parsing", "malformed yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}
