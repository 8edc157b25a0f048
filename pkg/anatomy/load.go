package anatomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a metadata resource
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// ErrUnsupportedFormat is returned when the resource extension is not JSON or YAML
var ErrUnsupportedFormat = errors.New("unsupported metadata format")

// ErrResourceTooLarge is returned when a remote resource exceeds maxResourceSize
var ErrResourceTooLarge = errors.New("metadata too large")

// maxResourceSize bounds remote metadata downloads
const maxResourceSize = 16 << 20

// Load fetches the metadata resource and parses it into a Store.
// source is either a local path or an http(s) URL.
func Load(ctx context.Context, source string) (*Store, error) {
	format, err := DetectFormat(source)
	if err != nil {
		return nil, err
	}

	var data []byte
	if isURL(source) {
		data, err = fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read metadata file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	return Parse(data, format)
}

// Parse decodes a `{ partId: {name, type, action, origin} }` mapping.
// Entries whose value is null are treated as absent.
func Parse(data []byte, format Format) (*Store, error) {
	var entries map[PartID]*PartRecord

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse metadata YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse metadata JSON: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	records := make(map[PartID]PartRecord, len(entries))
	for id, record := range entries {
		if record != nil {
			records[id] = *record
		}
	}
	return &Store{records: records}, nil
}

// DetectFormat picks the parser from the resource extension. Sources
// without an extension are treated as JSON.
func DetectFormat(source string) (Format, error) {
	name := source
	if isURL(source) {
		// Ignore query strings when looking at the extension
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		name = path.Base(name)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", "":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s (expected .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch metadata: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata response: %w", err)
	}
	if len(data) > maxResourceSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrResourceTooLarge, maxResourceSize)
	}
	return data, nil
}
