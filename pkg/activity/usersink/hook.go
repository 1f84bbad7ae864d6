// Package usersink forwards search analytics events to a go-users activity
// sink.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-hiddenquery/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Record data keys carrying the event fields ActivityRecord has no column for.
const (
	DataActionType = "action_type"
	DataOrigin     = "origin"
)

// Hook is an activity.ActivityHook writing one ActivityRecord per event.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify maps event onto an ActivityRecord. Incomplete events are skipped.
// Identifiers that are not UUIDs map to uuid.Nil.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	event = activity.NormalizeEvent(event)
	if !event.Complete() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Sink.Log(ctx, toRecord(event))
}

func toRecord(event activity.Event) usertypes.ActivityRecord {
	return usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       recordData(event),
		OccurredAt: event.OccurredAt,
	}
}

// recordData returns the event metadata plus action type and origin. The
// event metadata is already a private copy after normalization.
func recordData(event activity.Event) map[string]any {
	data := event.Metadata
	for key, value := range map[string]string{
		DataActionType: event.ActionType,
		DataOrigin:     event.Origin,
	} {
		if value == "" {
			continue
		}
		if data == nil {
			data = make(map[string]any, 2)
		}
		data[key] = value
	}
	return data
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
