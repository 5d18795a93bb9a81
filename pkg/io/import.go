package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cdgpath/pkg/builder"
	"github.com/matzehuels/cdgpath/pkg/cdg"
	"github.com/matzehuels/cdgpath/pkg/errors"
)

type graphJSON struct {
	Nodes []builder.Record `json:"nodes"`
}

type graphTOML struct {
	Nodes []builder.Record `toml:"node"`
}

type coverageDoc struct {
	Covered []cdg.Decision `json:"covered" toml:"covered"`
}

// ReadJSON decodes a JSON graph from r and builds it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*builder.Builder, error) {
	var data graphJSON
	if err := decodeJSON(r, &data); err != nil {
		return nil, err
	}
	return builder.Build(data.Nodes)
}

// ReadTOML decodes a TOML graph from r and builds it.
func ReadTOML(r io.Reader) (*builder.Builder, error) {
	var data graphTOML
	if err := decodeTOML(r, &data); err != nil {
		return nil, err
	}
	return builder.Build(data.Nodes)
}

// ImportGraph reads the graph file at path, choosing the decoder from the
// file extension (.json or .toml).
func ImportGraph(path string) (*builder.Builder, error) {
	ext, err := errors.ValidateGraphPath(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b *builder.Builder
	if ext == "toml" {
		b, err = ReadTOML(f)
	} else {
		b, err = ReadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ReadCoverageJSON decodes a JSON coverage file.
func ReadCoverageJSON(r io.Reader) ([]cdg.Decision, error) {
	var data coverageDoc
	if err := decodeJSON(r, &data); err != nil {
		return nil, err
	}
	return data.Covered, nil
}

// ReadCoverageTOML decodes a TOML coverage file.
func ReadCoverageTOML(r io.Reader) ([]cdg.Decision, error) {
	var data coverageDoc
	if err := decodeTOML(r, &data); err != nil {
		return nil, err
	}
	return data.Covered, nil
}

// ImportCoverage reads the coverage file at path by extension.
func ImportCoverage(path string) ([]cdg.Decision, error) {
	ext, err := errors.ValidateGraphPath(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ds []cdg.Decision
	if ext == "toml" {
		ds, err = ReadCoverageTOML(f)
	} else {
		ds, err = ReadCoverageJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return nil
}

func decodeTOML(r io.Reader, v any) error {
	md, err := toml.NewDecoder(r).Decode(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown keys %s", strings.Join(keys, ", "))
	}
	return nil
}
