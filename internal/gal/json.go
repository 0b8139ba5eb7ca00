package gal

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type tableFile struct {
	TableData []TableData `json:"TableData"`
}

// MarshalTables encodes tables as {"TableData": [...]}.
func MarshalTables(tables []TableData) ([]byte, error) {
	if tables == nil {
		tables = []TableData{}
	}
	b, err := json.MarshalIndent(tableFile{TableData: tables}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode tables")
	}
	return append(b, '\n'), nil
}

// UnmarshalTables accepts the object written by MarshalTables or a bare
// array of tables.
func UnmarshalTables(data []byte) ([]TableData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tables []TableData
		if err := json.Unmarshal(trimmed, &tables); err != nil {
			return nil, errors.Wrap(err, "decode tables")
		}
		return tables, nil
	}
	var f tableFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, errors.Wrap(err, "decode tables")
	}
	return f.TableData, nil
}

// LoadConfig decodes and validates a chip description.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	defer f.Close()
	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}
