package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/watchroom-cli/watchroom/filesystem"
)

// Fingerprint returns the hex encoded SHA-256 digest of the file content at path.
func Fingerprint(path string) (string, error) {
	file, err := filesystem.API().Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
