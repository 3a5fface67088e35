package services

import (
	"fmt"
	"time"
)

// GenerateServiceNumber número de ticket SRV-<año>-<count+1 con al menos 3 dígitos>.
// No garantiza unicidad: dos altas concurrentes con el mismo count producen el mismo número.
func GenerateServiceNumber(count int, now time.Time) string {
	return fmt.Sprintf("SRV-%d-%03d", now.Year(), count+1)
}
