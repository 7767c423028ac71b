package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-styleprops/pkg/activity"
	"github.com/goliatone/go-styleprops/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()

	event := activity.BuildOptionsUpdatedEvent(activity.PropertyEventInput{
		ActorID:    actorID.String(),
		UserID:     userID.String(),
		TenantID:   tenantID.String(),
		ObjectID:   "font-weight",
		Channel:    "styleprops",
		Attribute:  "options",
		OccurredAt: now,
	})

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.UserID != userID || record.TenantID != tenantID {
		t.Fatalf("unexpected ids: %+v", record)
	}
	if record.Verb != activity.VerbOptionsUpdated || record.ObjectType != activity.ObjectTypeOptions || record.ObjectID != "font-weight" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "styleprops" {
		t.Fatalf("expected channel styleprops got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["attribute"] != "options" {
		t.Fatalf("expected metadata passthrough got %v", record.Data["attribute"])
	}
}

func TestHookNotifyKeepsNonUUIDActorReference(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbPropertyChanged,
		ObjectType: activity.ObjectTypeProperty,
		ObjectID:   "float",
		ActorID:    "editor-7",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	record := sink.records[0]
	if record.ActorID != uuid.Nil {
		t.Fatalf("expected nil actor uuid, got %s", record.ActorID)
	}
	if record.Data["actor_ref"] != "editor-7" {
		t.Fatalf("expected actor_ref metadata, got %v", record.Data)
	}
	if record.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})
	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}

	if err := (usersink.Hook{}).Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "y", ObjectID: "z"}); err != nil {
		t.Fatalf("expected nil sink to be a no-op, got %v", err)
	}
}
