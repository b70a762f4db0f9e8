package utils

import (
	"fmt"
	"math"
	"os"
)

// SafeWriteFile writes data to a temp file and atomically renames it into
// place, so a failed write never leaves a truncated artifact behind.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// FileSizeKB returns the file's size in kilobytes, rounded to two decimals.
func FileSizeKB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat file: %w", err)
	}
	return math.Round(float64(info.Size())/1024*100) / 100, nil
}
