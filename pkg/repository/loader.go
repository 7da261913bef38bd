package repository

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/denguescope/pkg/domain/model"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/dataset.schema.json
var datasetSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(datasetSchema)

// Parse decodes a YAML dataset, checks it against the dataset schema and validates it
func Parse(data []byte) (*model.Dataset, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML dataset")
	}
	if doc == nil {
		return nil, goerr.New("dataset is empty")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate dataset schema")
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}
		return nil, goerr.New("dataset does not match schema",
			goerr.V("violations", strings.Join(violations, "; ")))
	}

	var dataset model.Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		return nil, goerr.Wrap(err, "failed to decode dataset")
	}

	if err := dataset.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dataset")
	}

	return &dataset, nil
}
