package ports

import "time"

type PhaseMetricsPort interface {
	ObservePhase(phase string, duration time.Duration, err error)
	SetDependencies(count int)
	WriteTextfile(path string) error
}
