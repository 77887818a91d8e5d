package config

import (
	stderrs "errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotenv loads KEY=VALUE pairs from the given files (default ".env") into
// the process env. Variables that are already set win. Missing files are not
// an error so production images without a .env keep working.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if stderrs.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
