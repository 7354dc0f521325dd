package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempAudioPath returns a collision-free path for a transient upload. Browser
// recordings arrive without a reliable filename, so the extension defaults to
// .webm when the hint carries none.
func TempAudioPath(dir, filenameHint string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	ext := filepath.Ext(filenameHint)
	if ext == "" {
		ext = ".webm"
	}
	return filepath.Join(dir, fmt.Sprintf("sample_%s%s", uuid.New().String(), ext))
}

// RemoveQuietly deletes a transient file, logging instead of failing; cleanup
// must never abort a request that already produced a result.
func RemoveQuietly(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to clean up temporary file %s: %v", path, err)
	}
}
