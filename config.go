package mindrisk

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelDirEnv overrides Config.ModelDir when set.
const ModelDirEnv = "MINDRISK_MODEL_DIR"

// Config holds the engine's tunables.
type Config struct {
	ModelDir    string           `yaml:"model_dir"`
	ModelType   ModelType        `yaml:"model_type"`
	TestSize    float64          `yaml:"test_size"`
	Seed        int64            `yaml:"seed"`
	LexiconFile string           `yaml:"lexicon_file"`
	Vectorizer  VectorizerConfig `yaml:"vectorizer"`
	Logistic    LogisticConfig   `yaml:"logistic"`
	Forest      ForestConfig     `yaml:"forest"`
	Boosting    BoostingConfig   `yaml:"boosting"`
}

// DefaultConfig returns the stock configuration: logistic regression, a 20%
// test split, seed 42, models under ./models.
func DefaultConfig() Config {
	return Config{
		ModelDir:   "models",
		ModelType:  LogisticRegressionModel,
		TestSize:   0.2,
		Seed:       42,
		Vectorizer: DefaultVectorizerConfig(),
		Logistic:   DefaultLogisticConfig(),
		Forest:     DefaultForestConfig(),
		Boosting:   DefaultBoostingConfig(),
	}
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
// Keys absent from the file keep their default values, and ModelDirEnv
// takes precedence over model_dir.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	cfg.applyDefaults()
	if dir := strings.TrimSpace(os.Getenv(ModelDirEnv)); dir != "" {
		cfg.ModelDir = dir
	}
	return cfg, cfg.Validate()
}

// applyDefaults fills zero values left by a sparse file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.ModelDir == "" {
		c.ModelDir = def.ModelDir
	}
	if c.ModelType == "" {
		c.ModelType = def.ModelType
	}
	if c.Vectorizer.NGramMin == 0 {
		c.Vectorizer.NGramMin = def.Vectorizer.NGramMin
	}
	if c.Vectorizer.NGramMax == 0 {
		c.Vectorizer.NGramMax = c.Vectorizer.NGramMin
	}
	if c.Vectorizer.MinDF == 0 {
		c.Vectorizer.MinDF = def.Vectorizer.MinDF
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case !c.ModelType.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownModelType, c.ModelType)
	case c.TestSize <= 0 || c.TestSize >= 1:
		return fmt.Errorf("test_size must be between 0 and 1, got %v", c.TestSize)
	case c.Vectorizer.NGramMin < 1 || c.Vectorizer.NGramMax < c.Vectorizer.NGramMin:
		return fmt.Errorf("vectorizer ngram range [%d, %d] is invalid", c.Vectorizer.NGramMin, c.Vectorizer.NGramMax)
	case c.Vectorizer.MaxFeatures < 1:
		return errors.New("vectorizer max_features must be positive")
	case c.Vectorizer.MaxDF <= 0 || c.Vectorizer.MaxDF > 1:
		return fmt.Errorf("vectorizer max_df must be in (0, 1], got %v", c.Vectorizer.MaxDF)
	case c.Logistic.C <= 0:
		return errors.New("logistic c must be positive")
	case c.Logistic.MaxIter < 1:
		return errors.New("logistic max_iter must be positive")
	case c.Forest.NEstimators < 1 || c.Forest.MaxDepth < 1:
		return errors.New("forest n_estimators and max_depth must be positive")
	case c.Boosting.NEstimators < 1 || c.Boosting.MaxDepth < 1:
		return errors.New("boosting n_estimators and max_depth must be positive")
	case c.Boosting.LearningRate <= 0:
		return errors.New("boosting learning_rate must be positive")
	}
	return nil
}
