package storage

import (
	"fmt"

	"github.com/alejandrodnm/bandgap/internal/ports"
)

// Drivers soportados por Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open crea el slot para el driver dado.
func Open(driver, dsn string) (ports.Slot, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteSlot(dsn)
	case DriverBolt:
		return NewBoltSlot(dsn)
	case DriverMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", driver)
	}
}
