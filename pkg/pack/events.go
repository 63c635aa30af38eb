package pack

import "context"

// Event names a user-facing occurrence reported to an Emitter.
type Event string

const (
	EventPageLoad        Event = "page_load"
	EventCustomAction    Event = "custom_action"
	EventPropertyChanged Event = "property_changed"
	EventSettingSaved    Event = "setting_saved"
	EventIconClick       Event = "icon_click"
	EventPacksCreated    Event = "packs_created"
	EventTabChanged      Event = "tab_changed"
)

// Source identifies the entry point that requested a pack.
type Source string

const (
	SourcePanel        Source = "panel"
	SourceCustomAction Source = "custom_action"
)

// Emitter receives fire-and-forget notifications. Emit must not block for
// long and its failures are never surfaced to pack creation.
type Emitter interface {
	Emit(ctx context.Context, event Event, props map[string]any)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx context.Context, event Event, props map[string]any)

func (f EmitterFunc) Emit(ctx context.Context, event Event, props map[string]any) {
	f(ctx, event, props)
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, Event, map[string]any) {}
