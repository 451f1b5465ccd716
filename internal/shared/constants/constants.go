// Package constants centralizes table names so models and migrations stay
// in sync.
package constants

const (
	TableSubscriptions = "subscriptions"
)

// Server mode / environment names.
const (
	EnvDevelopment = "debug"
	EnvTest        = "test"
	EnvProduction  = "release"
)
