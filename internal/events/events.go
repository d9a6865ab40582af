// Package events announces settings changes to other FitCoach services,
// such as the notification sender, so they can drop their own copies.
package events

import (
	"context"
	"time"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
)

// SettingsChanged is published after a settings document is stored
type SettingsChanged struct {
	TenantID  string          `json:"tenantId"`
	Category  models.Category `json:"category"`
	UpdatedBy string          `json:"updatedBy"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// RoutingKey is "settings.<category>.updated"
func (e SettingsChanged) RoutingKey() string {
	return "settings." + string(e.Category) + ".updated"
}

// Publisher delivers SettingsChanged events
type Publisher interface {
	PublishSettingsChanged(ctx context.Context, event SettingsChanged) error
}

// Nop discards every event
type Nop struct{}

func (Nop) PublishSettingsChanged(context.Context, SettingsChanged) error { return nil }
