// Package content serves the static portfolio documents (projects, about
// sections). The documents are inert configuration data, compiled in and
// served read-only.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/projects.json
var projectsJSON []byte

//go:embed data/about-sections.json
var aboutSectionsJSON []byte

// Validate checks at startup that the embedded documents are well-formed,
// so a bad edit fails the deploy instead of a request.
func Validate() error {
	var v any
	if err := json.Unmarshal(projectsJSON, &v); err != nil {
		return fmt.Errorf("embedded projects.json: %w", err)
	}
	if err := json.Unmarshal(aboutSectionsJSON, &v); err != nil {
		return fmt.Errorf("embedded about-sections.json: %w", err)
	}
	return nil
}
