// internal/generator/config.go
package generator

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout renders local wall-clock time as ISO-8601 with microseconds
// and no zone offset, e.g. 2025-03-14T09:26:53.589793.
const TimestampLayout = "2006-01-02T15:04:05.000000"

type Config struct {
	// Now supplies the creation time; defaults to time.Now.
	Now func() time.Time
	// NewID mints "<prefix>_<8 hex>" identifiers; defaults to NewEntityID.
	NewID func(prefix string) string
}

func LoadConfig() *Config {
	return &Config{
		Now:   time.Now,
		NewID: NewEntityID,
	}
}

// NewEntityID returns prefix + "_" + the first 8 lowercase hex characters of a
// random (version 4) UUID.
func NewEntityID(prefix string) string {
	u := uuid.New()
	return prefix + "_" + hex.EncodeToString(u[:4])
}
