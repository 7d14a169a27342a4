package v4

import (
	"encoding/json"
	"time"
)

type ExportResponse struct {
	Version      string                     `json:"version"`      // Version of the server that created the export
	Data         map[string]json.RawMessage `json:"data"`         // All resources, keyed by their type
	CreationTime time.Time                  `json:"creationTime"` // Time the export was created
}
