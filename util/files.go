package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// DigestFile returns the hex sha256 of a file, logged next to input names so
// runs can be matched to their data.
func DigestFile(fileName string) (string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
