package notify

import (
	"context"

	"github.com/dojsystem/process-api/panel"
)

// Sink delivers rendered panel messages to notification surfaces. Surface IDs
// come from config and are opaque to callers; a surface can be a broadcast
// channel, a dedicated discussion thread, or anything a concrete sink maps
// them to.
//
// go generate: mockery --name Sink
type Sink interface {
	// Send publishes a message to a surface and returns a reference that
	// can later be passed to EditMessage.
	Send(ctx context.Context, surfaceID string, msg panel.Message) (string, error)

	// EditMessage replaces a previously sent message in place.
	EditMessage(ctx context.Context, surfaceID, messageRef string, msg panel.Message) error

	// CreateDiscussionSurface opens a child surface attached to parentID
	// (a per-case thread) and returns its ID.
	CreateDiscussionSurface(ctx context.Context, parentID, name string) (string, error)

	// ArchiveSurface closes a discussion surface. Archived surfaces stop
	// receiving panel updates.
	ArchiveSurface(ctx context.Context, surfaceID string) error
}
