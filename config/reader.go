package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a request file.
type Format string

// The supported request encodings. JSON files are read as JSON5, so comments and trailing
// commas are allowed.
const (
	FormatJSON5 Format = "json5"
	FormatYAML  Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".json5":
		return FormatJSON5, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Errorf("unsupported request file extension %q", ext)
	}
}

// Read reads and validates a request from the given file. Environment variable references such as
// ${MAX_SPEED} are expanded before decoding.
func Read(filePath string) (*Request, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a request from the given reader. originalPath picks the encoding and names
// the request when the file does not.
func FromReader(originalPath string, r io.Reader) (*Request, error) {
	format, err := FormatFromPath(originalPath)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	req, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", originalPath)
	}
	if req.Name == "" {
		base := filepath.Base(originalPath)
		req.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return req, nil
}

// Parse decodes and validates a request.
func Parse(data []byte, format Format) (*Request, error) {
	var req Request
	switch format {
	case FormatJSON5:
		if err := json5.Unmarshal(data, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode request from json5")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return nil, errors.Wrap(err, "failed to decode request from yaml")
		}
	default:
		return nil, errors.Errorf("unknown request format %q", format)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}
