package definition

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for a definitions file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported definitions file format")
	// ErrUndecodedKeys is returned when a toml file contains unknown keys.
	ErrUndecodedKeys = errors.New("unknown keys in definitions file")
)

// File is the on-disk layout of a definitions file.
type File struct {
	Settings []Definition `toml:"setting" yaml:"setting" json:"setting"`
}

// Load reads the definitions from a .toml, .yaml, .yml or .json file,
// keeping the declaration order.
func Load(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read definitions file")
	}

	defs, err := Decode(filepath.Ext(path), raw)
	if err != nil {
		return nil, pkgerrors.Wrap(err, path)
	}

	return defs, nil
}

// Decode parses raw in the format named by ext.
func Decode(ext string, raw []byte) ([]Definition, error) {
	var f File

	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&f)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to decode toml")
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}

			return nil, pkgerrors.Wrap(ErrUndecodedKeys, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)

		if err := dec.Decode(&f); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to decode yaml")
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&f); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to decode json")
		}
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedFormat, ext)
	}

	return f.Settings, nil
}

// LoadRegistry loads path and builds the registry from it.
func LoadRegistry(path string) (*Registry, error) {
	defs, err := Load(path)
	if err != nil {
		return nil, err
	}

	return NewRegistry(defs)
}
