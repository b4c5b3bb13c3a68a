package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/getmockd/restapi/internal/cliconfig"
	"github.com/getmockd/restapi/pkg/adapter"
	"github.com/getmockd/restapi/pkg/schema"
)

// schemaPath is the optional schema file shared by the model commands.
var schemaPath string

// connect builds the schema the model commands operate on and binds the
// REST adapter to it. Settings from a schema file are overridden by any
// url, timeout or header value the user configured explicitly.
func connect() (*schema.Schema, error) {
	s := &schema.Schema{Name: "cli"}
	if schemaPath != "" {
		loaded, err := schema.LoadFile(schemaPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if s.Settings == nil {
		s.Settings = make(map[string]any)
	}
	for key, v := range cfg.AdapterSettings() {
		if _, inFile := s.Settings[key]; inFile && key == "url" && cfg.Sources["url"] == cliconfig.SourceDefault {
			continue
		}
		s.Settings[key] = v
	}

	if err := s.Connect(adapter.NewInitializer(adapter.WithLogger(log))); err != nil {
		return nil, err
	}
	return s, nil
}

// parseID turns a command-line id into the value sent to the adapter.
// Integers stay numeric so they round-trip as JSON numbers.
func parseID(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}

// parseRecord decodes a JSON object argument.
func parseRecord(raw string) (schema.Record, error) {
	var rec schema.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if rec == nil {
		return nil, ErrInvalidRecord
	}
	return rec, nil
}
