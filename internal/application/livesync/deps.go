package livesync

import (
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
	"github.com/jhoicas/biciros/pkg/metrics"
)

// Deps dependencias comunes que reciben los hooks de entidades.
type Deps struct {
	Clock   repository.Clock
	Metrics *metrics.Collectors
	Logger  *logger.Logger
}
