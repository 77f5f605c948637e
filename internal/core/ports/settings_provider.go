package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/settings"
)

// SettingsProvider exposes the admin settings blob. Implementations may cache.
type SettingsProvider interface {
	Current(ctx context.Context) (settings.Settings, error)
}

// SettingsSource reads the authoritative admin settings rows.
type SettingsSource interface {
	Load(ctx context.Context) (settings.Settings, error)
}
