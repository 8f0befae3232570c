// Package handoff passes a finished session's results to the results view
// through a transient key-value store.
package handoff

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/verte-zerg/typerush/internal/model"
)

// Key is the fixed store key for the results payload.
const Key = "typingResults"

const schemaURL = "https://typerush.invalid/results.schema.json"

//go:embed results.schema.json
var schemaJSON []byte

// ErrAbsent means there is no usable payload: it was never written, was
// already read, or could not be parsed.
var ErrAbsent = errors.New("no results available")

// KV is the transient store the payload travels through.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Take(ctx context.Context, key string) ([]byte, bool, error)
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Encode serializes a payload.
func Encode(r model.Results) ([]byte, error) {
	return json.Marshal(r)
}

// Decode parses and validates a payload. Any failure wraps ErrAbsent.
func Decode(data []byte) (model.Results, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return model.Results{}, fmt.Errorf("%w: malformed payload: %w", ErrAbsent, err)
	}
	schema, err := compileSchema()
	if err != nil {
		return model.Results{}, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return model.Results{}, fmt.Errorf("%w: invalid payload: %w", ErrAbsent, err)
	}
	var r model.Results
	if err := json.Unmarshal(data, &r); err != nil {
		return model.Results{}, fmt.Errorf("%w: malformed payload: %w", ErrAbsent, err)
	}
	return r, nil
}

// Save writes the payload under Key.
func Save(ctx context.Context, kv KV, r model.Results) error {
	data, err := Encode(r)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	return nil
}

// Load reads the payload under Key exactly once. Missing and malformed
// payloads both yield an error wrapping ErrAbsent.
func Load(ctx context.Context, kv KV) (model.Results, error) {
	data, ok, err := kv.Take(ctx, Key)
	if err != nil {
		return model.Results{}, fmt.Errorf("failed to read results: %w", err)
	}
	if !ok {
		return model.Results{}, ErrAbsent
	}
	return Decode(data)
}
