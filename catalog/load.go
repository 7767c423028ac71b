package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	styleprops "github.com/goliatone/go-styleprops"
	"github.com/goliatone/go-styleprops/internal/hydrate"
)

// Format names a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown encodings or file extensions.
var ErrUnsupportedFormat = errors.New("catalog: unsupported format")

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads a catalog file, picking the decoder from its extension.
func Load(path string, opts ...Option) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return parse(hydrate.Context{Source: path, Format: string(format)}, data, opts)
}

// LoadFS reads a catalog file from fsys.
func LoadFS(fsys fs.FS, path string, opts ...Option) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return parse(hydrate.Context{Source: path, Format: string(format)}, data, opts)
}

// Parse decodes a catalog document. The document is either a list of
// definitions or an object with a `properties` list, or a `properties` map
// keyed by property id.
func Parse(data []byte, format Format, opts ...Option) (*Catalog, error) {
	return parse(hydrate.Context{Format: string(format)}, data, opts)
}

type document struct {
	Properties []Definition `json:"properties"`
}

var documentDecoder = hydrate.NewDecoder(
	hydrate.WithPreHook[document](normalizeDocument),
	hydrate.WithPostHook[document](checkDocument),
)

func parse(ctx hydrate.Context, data []byte, opts []Option) (*Catalog, error) {
	raw, err := decodeRaw(Format(ctx.Format), data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", ctx, err)
	}
	doc, err := documentDecoder.Decode(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := New(doc.Properties, opts...)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("catalog loaded", "source", ctx.String(), "format", ctx.Format, "properties", c.Len())
	return c, nil
}

func decodeRaw(format Format, data []byte) (map[string]any, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		table := map[string]any{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
		raw = table
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch typed := raw.(type) {
	case nil:
		return map[string]any{"properties": []any{}}, nil
	case []any:
		return map[string]any{"properties": typed}, nil
	case map[string]any:
		return typed, nil
	default:
		return nil, fmt.Errorf("unexpected document root %T", raw)
	}
}

// normalizeDocument accepts the loose shapes hand written catalogs use: a
// map of properties keyed by id, boolean `full`, and scalar `requires`
// values.
func normalizeDocument(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	var entries []any
	switch props := payload["properties"].(type) {
	case nil:
	case []any:
		entries = props
	case map[string]any:
		for _, id := range slices.Sorted(maps.Keys(props)) {
			entry, ok := props[id].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q must be an object", id)
			}
			if _, has := entry["id"]; !has {
				entry["id"] = id
			}
			entries = append(entries, entry)
		}
	default:
		return nil, fmt.Errorf("properties must be a list or an object, got %T", props)
	}

	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("property %d must be an object", i)
		}
		if full, ok := entry["full"].(bool); ok {
			entry["full"] = boolToInt(full)
		}
		for _, key := range []string{"requires", "requiresParent"} {
			if rules, ok := entry[key].(map[string]any); ok {
				for style, allowed := range rules {
					if _, isList := allowed.([]any); !isList {
						rules[style] = []any{allowed}
					}
				}
			}
		}
	}
	if entries == nil {
		entries = []any{}
	}
	payload["properties"] = entries
	return payload, nil
}

func checkDocument(_ hydrate.Context, doc *document) error {
	for i := range doc.Properties {
		def := &doc.Properties[i]
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			def.ID = strings.TrimSpace(def.Property)
		}
		if def.ID == "" {
			return fmt.Errorf("property %d has neither id nor property", i)
		}
		if def.Type == "" && (len(def.Options) > 0 || len(def.List) > 0) {
			def.Type = styleprops.TypeSelect
		}
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
