package activity

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"attribute": "options"}
	evt := Event{
		Verb:       " property.changed ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " style.property ",
		ObjectID:   " font-weight ",
		Channel:    " styleprops ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "property.changed" || got.ObjectType != "style.property" || got.ObjectID != "font-weight" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "styleprops" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["attribute"] = "changed"
	if meta["attribute"] != "options" {
		t.Fatalf("expected original metadata untouched: %+v", meta)
	}
}

func TestHooksNotifyDropsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	if err := hooks.Notify(context.Background(), Event{Verb: "property.changed"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	boom1 := errors.New("boom1")
	boom2 := errors.New("boom2")
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, _ Event) error {
			ctxSeen = ctx != nil
			return nil
		}),
		capture,
		HookFunc(func(context.Context, Event) error { return boom1 }),
		nil,
		HookFunc(func(context.Context, Event) error { return boom2 }),
	}

	err := hooks.Notify(nil, Event{Verb: "property.changed", ObjectType: "style.property", ObjectID: "float"})
	if !errors.Is(err, boom1) || !errors.Is(err, boom2) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}
	event := Event{Verb: "property.changed", ObjectType: "style.property", ObjectID: "float"}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	if NewEmitter(nil, Config{Enabled: true}).Enabled() {
		t.Fatalf("expected emitter without hooks to be disabled")
	}

	enabled := NewEmitter(Hooks{capture, nil}, Config{Enabled: true, ActorID: "editor-1", TenantID: "acme"})
	if err := enabled.Emit(context.Background(), event); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	got := capture.Events[0]
	if got.Channel != DefaultChannel {
		t.Fatalf("expected default channel applied, got %q", got.Channel)
	}
	if got.ActorID != "editor-1" || got.TenantID != "acme" {
		t.Fatalf("expected session defaults applied, got %+v", got)
	}
}

func TestEmitterPreservesExplicitFields(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "default", ActorID: "session"})
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := emitter.Emit(context.Background(), Event{
		Verb:       "property.changed",
		ObjectType: "style.property",
		ObjectID:   "display",
		Channel:    "custom",
		ActorID:    "explicit",
		OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := capture.Events[0]
	if got.Channel != "custom" || got.ActorID != "explicit" {
		t.Fatalf("expected explicit fields preserved, got %+v", got)
	}
	if !got.OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at preserved, got %v", got.OccurredAt)
	}
}

func TestBuildPropertyEvents(t *testing.T) {
	input := PropertyEventInput{
		ActorID:   " actor ",
		ObjectID:  " font-weight ",
		Attribute: "value",
		OldValue:  "400",
		NewValue:  "700",
		Metadata:  map[string]any{"custom": "x"},
	}

	changed := BuildPropertyChangedEvent(input)
	if changed.Verb != VerbPropertyChanged || changed.ObjectType != ObjectTypeProperty {
		t.Fatalf("unexpected verb/object type: %+v", changed)
	}
	if changed.ObjectID != "font-weight" || changed.ActorID != "actor" {
		t.Fatalf("unexpected identity fields: %+v", changed)
	}
	if changed.Metadata["attribute"] != "value" || changed.Metadata["old_value"] != "400" || changed.Metadata["new_value"] != "700" {
		t.Fatalf("unexpected metadata: %+v", changed.Metadata)
	}
	if input.Metadata["attribute"] != nil {
		t.Fatalf("expected input metadata untouched, got %+v", input.Metadata)
	}

	updated := BuildOptionsUpdatedEvent(PropertyEventInput{})
	if updated.Verb != VerbOptionsUpdated || updated.ObjectID != ObjectTypeOptions {
		t.Fatalf("expected object id fallback to object type, got %+v", updated)
	}
	if updated.Metadata != nil {
		t.Fatalf("expected nil metadata, got %+v", updated.Metadata)
	}
}

func TestCaptureHookVerbs(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}
	_ = hooks.Notify(context.Background(), BuildPropertyChangedEvent(PropertyEventInput{ObjectID: "a"}))
	_ = hooks.Notify(context.Background(), BuildOptionsUpdatedEvent(PropertyEventInput{ObjectID: "a"}))

	want := []string{VerbPropertyChanged, VerbOptionsUpdated}
	if got := capture.Verbs(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
