package mindrisk

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Artifact file names inside a model directory.
const (
	VectorizerFile = "vectorizer.gob"
	ClassifierFile = "classifier.gob"
)

// ErrArtifactMissing is returned by Load when either artifact is absent.
var ErrArtifactMissing = errors.New("model artifact missing")

// classifierBlob is the gob payload of ClassifierFile.
type classifierBlob struct {
	RunID      string
	ModelType  ModelType
	TrainedAt  time.Time
	Classifier Classifier
}

// ArtifactStore persists a fitted vectorizer and classifier as two gob files
// under Dir. Each file is written to a temporary name and renamed into place.
type ArtifactStore struct {
	Dir string
}

// NewArtifactStore returns a store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{Dir: dir}
}

// Exists reports whether both artifacts are present.
func (s *ArtifactStore) Exists() bool {
	for _, name := range []string{VectorizerFile, ClassifierFile} {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Save writes both artifacts of m.
func (s *ArtifactStore) Save(m *trainedModel) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}
	if err := writeGob(filepath.Join(s.Dir, VectorizerFile), m.vectorizer); err != nil {
		return err
	}
	blob := classifierBlob{
		RunID:      m.runID,
		ModelType:  m.classifier.Type(),
		TrainedAt:  m.trainedAt,
		Classifier: m.classifier,
	}
	return writeGob(filepath.Join(s.Dir, ClassifierFile), &blob)
}

// Load reads both artifacts. It returns ErrArtifactMissing when either file
// does not exist.
func (s *ArtifactStore) Load() (*trainedModel, error) {
	var vectorizer TfidfVectorizer
	if err := readGob(filepath.Join(s.Dir, VectorizerFile), &vectorizer); err != nil {
		return nil, err
	}
	var blob classifierBlob
	if err := readGob(filepath.Join(s.Dir, ClassifierFile), &blob); err != nil {
		return nil, err
	}
	if blob.Classifier == nil || !vectorizer.Fitted() {
		return nil, fmt.Errorf("model artifacts in %s are empty", s.Dir)
	}
	return &trainedModel{
		vectorizer: &vectorizer,
		classifier: blob.Classifier,
		runID:      blob.RunID,
		trainedAt:  blob.TrainedAt,
	}, nil
}

func writeGob(path string, v interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
