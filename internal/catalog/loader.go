package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/VirtualStore_Go/internal/domain"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/validation"
	"github.com/osse101/VirtualStore_Go/internal/wire"
)

// Loader reads a store definition from a file
type Loader interface {
	Load(ctx context.Context, path string) (domain.StoreAssets, error)
}

type assetsLoader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
	codec           wire.Codec
}

// NewLoader creates a loader that validates files against schemaPath (skipped
// when empty) and resolves platform product ids for platform.
func NewLoader(schemaPath string, platform wire.Platform) Loader {
	return &assetsLoader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      schemaPath,
		codec:           wire.Codec{Platform: platform},
	}
}

// Load reads a JSON or YAML store assets file. YAML is converted to the JSON
// document form first so both go through the same schema and decoder.
func (l *assetsLoader) Load(ctx context.Context, path string) (domain.StoreAssets, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StoreAssets{}, fmt.Errorf(ErrMsgReadAssetsFileFailed, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		if data, err = yamlToJSON(data); err != nil {
			return domain.StoreAssets{}, err
		}
	}

	if l.schemaPath != "" {
		if err := l.schemaValidator.ValidateBytes(data, l.schemaPath); err != nil {
			return domain.StoreAssets{}, fmt.Errorf(ErrMsgSchemaFailedFmt, path, fmt.Errorf("%w: %v", domain.ErrCatalogInvalid, err))
		}
	}

	assets, err := l.codec.DecodeAssets(data)
	if err != nil {
		return domain.StoreAssets{}, err
	}

	log.Info(LogMsgAssetsFileLoaded, "path", path, "version", assets.Version, "items", assets.ItemCount())
	return assets, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseAssetsYAMLFailed, fmt.Errorf("%w: %v", domain.ErrMalformedWireData, err))
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseAssetsYAMLFailed, fmt.Errorf("%w: %v", domain.ErrMalformedWireData, err))
	}
	return out, nil
}
