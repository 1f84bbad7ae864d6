package activity

import (
	"context"
	"testing"
	"time"
)

func TestBuildContextRemoveEventCarriesContextName(t *testing.T) {
	meta := map[string]any{"custom": "value"}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	event := BuildContextRemoveEvent(ContextRemoveInput{
		ActorID:     " actor ",
		Origin:      " HiddenQuery ",
		ContextName: "  a ver …",
		Metadata:    meta,
		OccurredAt:  at,
	})

	if event.Verb != "contextRemove" || event.ActionType != "misc" {
		t.Fatalf("unexpected cause: %q/%q", event.Verb, event.ActionType)
	}
	if event.ObjectType != ObjectTypeSearchContext || event.ObjectID != "a ver …" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.Metadata[MetadataContextName] != "  a ver …" {
		t.Fatalf("expected context name preserved verbatim, got %q", event.Metadata[MetadataContextName])
	}
	if event.Metadata["custom"] != "value" {
		t.Fatalf("expected custom metadata, got %+v", event.Metadata)
	}
	if _, ok := meta[MetadataContextName]; ok {
		t.Fatalf("expected caller metadata untouched")
	}
	if event.ActorID != "actor" || event.Origin != "HiddenQuery" {
		t.Fatalf("unexpected identity fields: %+v", event)
	}
	if !event.OccurredAt.Equal(at) {
		t.Fatalf("expected occurred_at preserved")
	}
}

func TestBuildContextRemoveEventWithEmptyNameStillNotifies(t *testing.T) {
	capture := &CaptureHook{}
	event := BuildContextRemoveEvent(ContextRemoveInput{Origin: "HiddenQuery"})
	if event.ObjectID != "HiddenQuery" {
		t.Fatalf("expected origin fallback for object id, got %q", event.ObjectID)
	}

	if err := (Hooks{capture}).Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	events := capture.Snapshot()
	if len(events) != 1 {
		t.Fatalf("expected event delivered, got %d", len(events))
	}
	if name, ok := events[0].Metadata[MetadataContextName]; !ok || name != "" {
		t.Fatalf("expected empty context name recorded, got %v (present=%t)", name, ok)
	}

	fallback := BuildContextRemoveEvent(ContextRemoveInput{})
	if fallback.ObjectID != ObjectTypeSearchContext {
		t.Fatalf("expected object type fallback, got %q", fallback.ObjectID)
	}
}

func TestBuildBreadcrumbResetEvent(t *testing.T) {
	event := BuildBreadcrumbResetEvent("Breadcrumb")
	if event.Verb != "breadcrumbResetAll" || event.ActionType != "breadcrumb" {
		t.Fatalf("unexpected cause: %+v", event)
	}
	if event.ObjectID != "Breadcrumb" {
		t.Fatalf("expected origin as object id, got %q", event.ObjectID)
	}
}

func TestCaptureHookResetAndSnapshot(t *testing.T) {
	capture := &CaptureHook{}
	_ = capture.Notify(context.Background(), Event{Verb: "v", ObjectType: "t", ObjectID: "1"})
	snap := capture.Snapshot()
	snap[0].Verb = "changed"
	if capture.Events[0].Verb != "v" {
		t.Fatalf("expected snapshot to be a copy")
	}
	capture.Reset()
	if len(capture.Snapshot()) != 0 {
		t.Fatalf("expected reset to drop events")
	}
}
