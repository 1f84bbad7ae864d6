package activity

import (
	"strings"
	"time"
)

// ActionCause names a search analytics cause and its category.
type ActionCause struct {
	Name string
	Type string
}

// Action causes emitted by search UI components.
var (
	ContextRemove   = ActionCause{Name: "contextRemove", Type: "misc"}
	BreadcrumbReset = ActionCause{Name: "breadcrumbResetAll", Type: "breadcrumb"}
)

// ObjectTypeSearchContext identifies events about hidden search context.
const ObjectTypeSearchContext = "search.context"

// MetadataContextName is the metadata key carrying the removed context label.
const MetadataContextName = "contextName"

// ContextRemoveInput describes a user removing hidden search context.
type ContextRemoveInput struct {
	ActorID     string
	UserID      string
	TenantID    string
	Origin      string
	Channel     string
	ContextName string
	Metadata    map[string]any
	OccurredAt  time.Time
}

// BuildContextRemoveEvent constructs the event logged when a user clears a
// hidden query. ContextName is stored verbatim, even when empty.
func BuildContextRemoveEvent(input ContextRemoveInput) Event {
	metadata := ensureMetadata(cloneMap(input.Metadata))
	metadata[MetadataContextName] = input.ContextName

	return buildSearchEvent(ContextRemove, ObjectTypeSearchContext, strings.TrimSpace(input.ContextName), Event{
		ActorID:    input.ActorID,
		UserID:     input.UserID,
		TenantID:   input.TenantID,
		Origin:     input.Origin,
		Channel:    input.Channel,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	})
}

func buildSearchEvent(cause ActionCause, objectType, objectID string, base Event) Event {
	if objectID == "" {
		objectID = strings.TrimSpace(base.Origin)
	}
	if objectID == "" {
		objectID = objectType
	}
	event := base
	event.Verb = cause.Name
	event.ActionType = cause.Type
	event.ObjectType = objectType
	event.ObjectID = objectID
	event.ActorID = strings.TrimSpace(base.ActorID)
	event.UserID = strings.TrimSpace(base.UserID)
	event.TenantID = strings.TrimSpace(base.TenantID)
	event.Origin = strings.TrimSpace(base.Origin)
	event.Channel = strings.TrimSpace(base.Channel)
	return event
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}

// BuildBreadcrumbResetEvent constructs the event logged when every
// breadcrumb is cleared at once.
func BuildBreadcrumbResetEvent(origin string) Event {
	return buildSearchEvent(BreadcrumbReset, "search.breadcrumb", "", Event{Origin: origin})
}
