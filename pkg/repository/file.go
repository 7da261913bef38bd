package repository

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/interfaces"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
)

// File reads the dataset from a YAML file
type File struct {
	path string
}

// NewFile creates a dataset source backed by a YAML file
func NewFile(path string) interfaces.DatasetSource {
	return &File{path: path}
}

// Load reads and parses the dataset file
func (f *File) Load(ctx context.Context) (*model.Dataset, error) {
	if f.path == "" {
		return nil, goerr.New("dataset file path is required")
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "dataset file not found", goerr.V("path", f.path))
		}
		return nil, goerr.Wrap(err, "failed to read dataset file", goerr.V("path", f.path))
	}

	dataset, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset file", goerr.V("path", f.path))
	}

	ctxlog.From(ctx).Info("Loaded dataset file", "path", f.path)
	return dataset, nil
}

// Name implements interfaces.DatasetSource
func (f *File) Name() string {
	return f.path
}
