package activity

import (
	"context"
	"strings"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "styleprops"

// Config controls emitter defaults. ActorID, UserID and TenantID identify the
// editing session and fill events that do not carry their own.
type Config struct {
	Enabled  bool
	Channel  string
	ActorID  string
	UserID   string
	TenantID string
}

// Emitter fans out events to hooks while applying session defaults.
type Emitter struct {
	hooks   Hooks
	enabled bool
	cfg     Config
}

// NewEmitter constructs an emitter from hooks and configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	cfg.Channel = strings.TrimSpace(cfg.Channel)
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	normalized := cloneHooks(hooks)
	return &Emitter{
		hooks:   normalized,
		enabled: cfg.Enabled && len(normalized) > 0,
		cfg:     cfg,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit applies the configured defaults and forwards the event to all hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.cfg.Channel
	}
	if strings.TrimSpace(event.ActorID) == "" {
		event.ActorID = e.cfg.ActorID
	}
	if strings.TrimSpace(event.UserID) == "" {
		event.UserID = e.cfg.UserID
	}
	if strings.TrimSpace(event.TenantID) == "" {
		event.TenantID = e.cfg.TenantID
	}
	return e.hooks.Notify(ctx, event)
}
