package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/priya/jobscout/internal/types"
)

// legacySchema validates the flat-file knowledge base format this system
// originally kept on disk: a JSON object mapping company name to its crawl
// health record.
const legacySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "status": {"type": "string", "enum": ["WORKING", "NON-WORKING"]},
      "reason": {"type": "string"},
      "portal": {"type": "string"},
      "portal_url": {"type": "string"},
      "last_checked": {"type": "string"}
    },
    "required": ["status"]
  }
}`

type legacyEntry struct {
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	Portal      string `json:"portal"`
	PortalURL   string `json:"portal_url"`
	LastChecked string `json:"last_checked"`
}

// portalURL prefers the explicit key; older flat files wrote "portal".
func (e legacyEntry) portalURL() string {
	if e.PortalURL != "" {
		return e.PortalURL
	}
	return e.Portal
}

// legacyTimeLayouts covers RFC3339 exports and the bare local timestamps
// older files carry ("2024-05-01 12:00:00.123456").
var legacyTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
}

// ImportError reports a legacy file that failed schema validation.
type ImportError struct {
	Path   string
	Errors []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid knowledge base file %s:\n  %s",
		e.Path, strings.Join(e.Errors, "\n  "))
}

// ImportLegacyFile reads a flat-file knowledge base, validates it against
// the legacy schema, and upserts every entry as a portal row. Returns the
// number of entries imported.
func (r *Recorder) ImportLegacyFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read knowledge base file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(legacySchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to validate knowledge base file: %w", err)
	}
	if !result.Valid() {
		importErr := &ImportError{Path: path}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			importErr.Errors = append(importErr.Errors, field+": "+desc.Description())
		}
		return 0, importErr
	}

	var entries map[string]legacyEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("failed to decode knowledge base file: %w", err)
	}

	imported := 0
	for company, entry := range entries {
		p := &types.PortalEntry{
			Company:   company,
			PortalURL: entry.portalURL(),
			Status:    types.PortalStatus(entry.Status),
			Reason:    entry.Reason,
		}
		for _, layout := range legacyTimeLayouts {
			if ts, err := time.Parse(layout, entry.LastChecked); err == nil {
				p.LastChecked = ts
				break
			}
		}
		if err := r.store.UpsertPortal(ctx, p); err != nil {
			return imported, fmt.Errorf("failed to import portal %s: %w", company, err)
		}
		imported++
	}
	return imported, nil
}
