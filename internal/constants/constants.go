package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

const (
	AccountChunkSize = 100
	VehicleChunkSize = 50
)

const (
	DefaultActiveWindow    = 7 * 24 * time.Hour
	DefaultTopTanksPerTier = 10
	TimelineLimit          = 6
)

const (
	RenderIDLength = 12
)
