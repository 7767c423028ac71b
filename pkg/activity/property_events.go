package activity

import (
	"strings"
	"time"
)

// Verbs and object types emitted for style property mutations.
const (
	VerbPropertyChanged = "property.changed"
	VerbOptionsUpdated  = "property.options.updated"

	ObjectTypeProperty = "style.property"
	ObjectTypeOptions  = "style.property.options"
)

// PropertyEventInput describes one attribute transition on a property.
type PropertyEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ObjectID   string
	Channel    string
	Attribute  string
	OldValue   any
	NewValue   any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildPropertyChangedEvent builds the event for a generic attribute change.
func BuildPropertyChangedEvent(input PropertyEventInput) Event {
	return buildPropertyEvent(VerbPropertyChanged, ObjectTypeProperty, input)
}

// BuildOptionsUpdatedEvent builds the event for a replaced option list.
func BuildOptionsUpdatedEvent(input PropertyEventInput) Event {
	return buildPropertyEvent(VerbOptionsUpdated, ObjectTypeOptions, input)
}

func buildPropertyEvent(verb, objectType string, input PropertyEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Attribute != "" {
		metadata = ensureMetadata(metadata)
		metadata["attribute"] = input.Attribute
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
