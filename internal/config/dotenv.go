package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// loadDotenv loads the variables defined in the file at path into the
// process environment. Variables already present in the environment keep
// their values, so the real environment always wins over file contents.
//
// Returns a wrapped error if the file is missing or cannot be parsed.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}

	return nil
}
