package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes generated files into outputDir, creating it if needed.
// It returns the written paths.
func WriteFiles(outputDir string, files ...*GeneratedFile) ([]string, error) {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(files))

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return paths, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		paths = append(paths, outputPath)
	}

	return paths, nil
}
