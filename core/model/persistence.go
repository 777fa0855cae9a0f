package model

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/classigo/pkg/errors"
)

// Persisted artifacts are a gob stream prefixed with a magic string and a
// format version byte, so that foreign or truncated files fail loudly on load
// instead of producing a half-decoded model.
var artifactMagic = []byte("CLGO")

const artifactVersion byte = 1

// SaveModel saves a model to a file.
//
// Example:
//
//	clf := linear.NewLogisticRegression()
//	// ... fit ...
//	err := model.SaveModel(clf, "model.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	if err := SaveModelToWriter(model, file); err != nil {
		return errors.Wrapf(err, "failed to save model to %s", filename)
	}
	return nil
}

// LoadModel loads a model from a file into the given pointer. The target must
// be the same concrete type that was saved.
//
// Example:
//
//	clf := linear.NewLogisticRegression()
//	err := model.LoadModel(clf, "model.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	if err := LoadModelFromReader(model, file); err != nil {
		return errors.Wrapf(err, "failed to load model from %s", filename)
	}
	return nil
}

// SaveModelToWriter writes the versioned model artifact to w.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	header := append(append([]byte{}, artifactMagic...), artifactVersion)
	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write artifact header")
	}

	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader reads a versioned model artifact from r.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	header := make([]byte, len(artifactMagic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return errors.Wrap(errors.ErrCorruptModel, "artifact header missing")
	}
	if !bytes.Equal(header[:len(artifactMagic)], artifactMagic) {
		return errors.Wrap(errors.ErrCorruptModel, "bad magic bytes")
	}
	if version := header[len(artifactMagic)]; version != artifactVersion {
		return errors.Wrapf(errors.ErrCorruptModel, "unsupported artifact version %d", version)
	}

	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(model); err != nil {
		return errors.Wrapf(errors.ErrCorruptModel, "gob decode failed: %v", err)
	}
	return nil
}
