package styleprops

import "github.com/goliatone/go-styleprops/pkg/activity"

// WithActivityHooks forwards attribute changes to hooks as activity events.
// Nil hooks are dropped and the slice is copied.
func WithActivityHooks(hooks activity.Hooks) PropertyOption {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *propertyConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the emitter defaults (channel, actor, tenant).
// Emission stays disabled unless hooks are configured as well.
func WithActivityConfig(config activity.Config) PropertyOption {
	return func(cfg *propertyConfig) {
		cfg.activityConfig = config
	}
}

// ActivityHooks returns a copy of the hooks configured on the property.
func (p *Property) ActivityHooks() activity.Hooks {
	if p == nil {
		return nil
	}
	return cloneActivityHooks(p.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make(activity.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			normalized = append(normalized, hook)
		}
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
