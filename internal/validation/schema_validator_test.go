package validation

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const itemSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"itemId": {"type": "string", "minLength": 1},
		"amount": {"type": "integer", "minimum": 0},
		"equipping": {"type": "string", "enum": ["local", "category", "global"]}
	},
	"required": ["itemId"]
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, itemSchema)

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid item", data: `{"itemId": "gem", "amount": 3}`},
		{name: "optional fields omitted", data: `{"itemId": "gem"}`},
		{name: "missing required field", data: `{"amount": 1}`, errorMsg: "required"},
		{name: "wrong type", data: `{"itemId": "gem", "amount": "three"}`, errorMsg: "/amount"},
		{name: "below minimum", data: `{"itemId": "gem", "amount": -1}`, errorMsg: "minimum"},
		{name: "empty id", data: `{"itemId": ""}`, errorMsg: "minLength"},
		{name: "enum violation", data: `{"itemId": "hat", "equipping": "team"}`, errorMsg: "enum"},
		{name: "invalid JSON", data: `{"itemId": }`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, itemSchema)
	dataPath := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"itemId": "gem"}`), 0644))

	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))

	err := v.ValidateFile("nonexistent.json", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_ValidateDocumentFromYAML(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, itemSchema)

	var good interface{}
	require.NoError(t, yaml.Unmarshal([]byte("itemId: gem\namount: 5\nequipping: global\n"), &good))
	assert.NoError(t, v.ValidateDocument(good, schemaPath))

	var bad interface{}
	require.NoError(t, yaml.Unmarshal([]byte("amount: 5\n"), &bad))
	err := v.ValidateDocument(bad, schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)
	schemaPath := writeSchema(t, itemSchema)
	data := []byte(`{"itemId": "gem"}`)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)
}

func TestSchemaValidator_ConcurrentValidation(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, itemSchema)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- v.ValidateBytes([]byte(`{"itemId": "gem"}`), schemaPath)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
