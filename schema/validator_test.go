package payloadschema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidateBatch_Valid(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[
			{
				"track_key":"ascot",
				"race_key":"ascot::r01",
				"start_time_iso":"14:30",
				"runners":[
					{
						"name":{"value":"Horse A","confidence":0.9,"provenance":"paste"},
						"number":{"value":"1","confidence":0.9},
						"odds":{"value":"5/2","confidence":0.9}
					},
					{
						"runner_id":"custom-id",
						"name":{"value":"Horse B","confidence":0.6}
					}
				],
				"extras":{
					"course":{"value":"Ascot","confidence":0.9}
				}
			}
		]
	}`)

	docs, err := ValidateBatch(payload)
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	doc := docs[0]
	if doc.SourceID != "manual_paste" || doc.FetchedAt != "2026-03-14T09:00:00Z" {
		t.Fatalf("expected batch source and fetch time stamped, got %q %q", doc.SourceID, doc.FetchedAt)
	}
	if got := doc.Runners[0].RunnerID; got != "1:horse a" {
		t.Fatalf("expected derived runner ID, got %q", got)
	}
	if got := doc.Runners[1].RunnerID; got != "custom-id" {
		t.Fatalf("expected explicit runner ID kept, got %q", got)
	}
}

func TestValidateBatch_WrongVersion(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v2",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[]
	}`)

	if _, err := ValidateBatch(payload); err == nil {
		t.Fatalf("expected validation to fail for wrong payload_version")
	}
}

func TestValidateBatch_MissingKeys(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[
			{"track_key":"ascot","runners":[]}
		]
	}`)

	if _, err := ValidateBatch(payload); err == nil {
		t.Fatalf("expected validation to fail for missing race_key")
	}
}

func TestValidateBatch_NamelessRunner(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[
			{
				"track_key":"ascot",
				"race_key":"ascot::r01",
				"runners":[{"name":{"value":"   ","confidence":0.9}}]
			}
		]
	}`)

	_, err := ValidateBatch(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for whitespace-only runner name")
	}
	if !strings.Contains(err.Error(), "name value is required") {
		t.Fatalf("expected runner name semantic error, got: %v", err)
	}
}

func TestValidateBatch_ConfidenceOutOfRange(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[
			{
				"track_key":"ascot",
				"race_key":"ascot::r01",
				"runners":[{"name":{"value":"Horse A","confidence":1.5}}]
			}
		]
	}`)

	if _, err := ValidateBatch(payload); err == nil {
		t.Fatalf("expected validation to fail for confidence above 1")
	}
}

func TestValidateBatch_TrailingData(t *testing.T) {
	payload := json.RawMessage(`{
		"payload_version":"v1",
		"source":"manual_paste",
		"fetched_at":"2026-03-14T09:00:00Z",
		"documents":[]
	}{"extra":true}`)

	_, err := ValidateBatch(payload)
	if err == nil {
		t.Fatalf("expected validation to fail for trailing data")
	}
	if !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestValidateBatch_NotJSON(t *testing.T) {
	if _, err := ValidateBatch(json.RawMessage("5.30 Ascot | Horse A 5/2")); err == nil {
		t.Fatalf("expected plain text paste to be rejected")
	}
}
