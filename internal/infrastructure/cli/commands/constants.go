package commands

import (
	"context"

	"github.com/doeshing/agpt/internal/app"
)

// ContainerFunc returns the application container. It is resolved lazily so
// persistent flags such as --config are parsed first.
type ContainerFunc func(ctx context.Context) (*app.Container, error)

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
)

const redactedSecret = "********"
