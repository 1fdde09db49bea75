package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string // file (single format) or base path; empty means appName
}

// writeArtifacts writes each artifact to disk and prints the paths.
func writeArtifacts(p artifactWriteParams) error {
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p.output, format, len(p.formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath picks the file name for one format. A single format with an
// explicit extension is written exactly where the user asked.
func artifactPath(output, format string, count int) string {
	if output == "" {
		return appName + "." + format
	}
	ext := filepath.Ext(output)
	if count == 1 && ext != "" {
		return output
	}
	return strings.TrimSuffix(output, ext) + "." + format
}
