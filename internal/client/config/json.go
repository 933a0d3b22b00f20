package config

import (
	"encoding/json"
	"os"

	"github.com/mkalinins/commportal/internal/client/session"
	"github.com/mkalinins/commportal/internal/flagx"
	"github.com/mkalinins/commportal/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as "10s" or as
// integer nanoseconds.
type jsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	RestoreMode    string         `json:"restore_mode"`
}

// parseJSON overlays Config with values from the file named by -c/-config.
// Missing flag means no JSON is loaded. Empty JSON fields leave the
// corresponding Config values untouched. Read or unmarshal errors panic;
// the process cannot start with a broken explicit config.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RestoreMode != "" {
		cfg.RestoreMode = session.RestoreMode(jc.RestoreMode)
	}
}
