package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidDocument wraps every schema rejection so callers can map it to
// the import-failed path without string matching.
type ErrInvalidDocument struct {
	Cause error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("backup document does not match schema: %v", e.Cause)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Cause }

// documentSchema constrains the core fields of a backup document.
// Optional fields and unknown keys pass through; the point is to reject
// files that are structurally not backups before the destructive restore,
// not to freeze the format.
func documentSchema() map[string]any {
	millis := map[string]any{"type": "integer", "minimum": 0}
	optionalMillis := map[string]any{"type": []string{"integer", "null"}}
	money := map[string]any{"type": "number", "minimum": 0}
	optionalString := map[string]any{"type": []string{"string", "null"}}

	receipt := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"receiptId":          map[string]any{"type": "string", "pattern": `^\d+-[A-Z0-9]{6}$`},
			"boardingLocation":   map[string]any{"type": "string"},
			"destination":        map[string]any{"type": "string"},
			"tripStartDate":      millis,
			"tripEndDate":        optionalMillis,
			"pricePerKm":         money,
			"waitingChargePerHr": money,
			"waitingHrs":         money,
			"totalKm":            money,
			"tollParking":        money,
			"bata":               money,
			"driverName":         map[string]any{"type": "string"},
			"driverMobile":       map[string]any{"type": "string"},
			"vehicleNumber":      map[string]any{"type": "string"},
			"ownerSignaturePath": optionalString,
			"baseFare":           map[string]any{"type": "number"},
			"waitingFee":         map[string]any{"type": "number"},
			"totalFee":           map[string]any{"type": "number"},
			"createdAt":          millis,
			"updatedAt":          millis,
		},
		"required": []string{"receiptId", "boardingLocation", "destination", "tripStartDate"},
	}

	cabInfo := map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"id":                 map[string]any{"type": "integer"},
			"cabName":            map[string]any{"type": "string"},
			"cabAddress":         map[string]any{"type": "string"},
			"primaryContact":     map[string]any{"type": "string"},
			"secondaryContact":   optionalString,
			"email":              map[string]any{"type": "string"},
			"logoPath":           optionalString,
			"ownerSignaturePath": optionalString,
			"createdAt":          millis,
			"updatedAt":          millis,
		},
		"required": []string{"cabName", "cabAddress", "primaryContact", "email"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version":   map[string]any{"type": "integer", "minimum": 1},
			"timestamp": millis,
			"cabInfo":   cabInfo,
			"receipts":  map[string]any{"type": "array", "items": receipt},
		},
		"required": []string{"version", "timestamp", "receipts"},
	}
}

// validateDocument checks raw backup bytes against the document schema.
func validateDocument(data []byte) error {
	b, err := json.Marshal(documentSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("backup.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("backup.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return &ErrInvalidDocument{Cause: err}
	}
	if err := schema.Validate(v); err != nil {
		return &ErrInvalidDocument{Cause: err}
	}
	return nil
}
