// Package payloadschema validates raw race-document batch payloads before
// they enter the fusion pipeline, so a malformed manual paste or feed file
// is rejected with a precise error instead of corrupting the merge cache.
package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/paddock/internal/racecard"
)

//go:embed race_document.schema.json
var raceDocumentSchemaJSON string

// Batch is the decoded payload envelope.
type Batch struct {
	PayloadVersion string                     `json:"payload_version"`
	Source         string                     `json:"source"`
	FetchedAt      string                     `json:"fetched_at"`
	Documents      []racecard.RawRaceDocument `json:"documents"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateBatch checks a raw payload against the v1 schema and semantic
// rules, returning the documents stamped with the batch source and fetch
// time. Runner IDs are derived where the payload omits them.
func ValidateBatch(payload json.RawMessage) ([]racecard.RawRaceDocument, error) {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}

	var batch Batch
	if err := json.Unmarshal(normalized, &batch); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := validateSemantics(&batch); err != nil {
		return nil, err
	}

	for i := range batch.Documents {
		doc := &batch.Documents[i]
		doc.SourceID = batch.Source
		doc.FetchedAt = batch.FetchedAt
		for j := range doc.Runners {
			runner := &doc.Runners[j]
			if strings.TrimSpace(runner.RunnerID) != "" {
				continue
			}
			number := ""
			if runner.Number != nil {
				number = runner.Number.Value
			}
			runner.RunnerID = racecard.DeriveRunnerID(number, runner.Name.Value)
		}
	}

	return batch.Documents, nil
}

func validateSemantics(batch *Batch) error {
	if strings.TrimSpace(batch.Source) == "" {
		return fmt.Errorf("source is required")
	}
	for i, doc := range batch.Documents {
		if !doc.Mergeable() {
			return fmt.Errorf("documents[%d]: track_key and race_key are required", i)
		}
		for j, runner := range doc.Runners {
			if runner.Name == nil || strings.TrimSpace(runner.Name.Value) == "" {
				return fmt.Errorf("documents[%d].runners[%d]: name value is required", i, j)
			}
		}
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("race_document.schema.json", strings.NewReader(raceDocumentSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("race_document.schema.json")
	})
	return compiledSchema, compiledSchemaErr
}

func decodeStrictJSON(payload json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := ensureSingleDocument(decoder); err != nil {
		return nil, err
	}
	return value, nil
}

func ensureSingleDocument(decoder *json.Decoder) error {
	if _, err := decoder.Token(); err != io.EOF {
		return fmt.Errorf("payload contains trailing data")
	}
	return nil
}
