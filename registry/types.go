package registry

// Handle is an opaque reference to a container in a table.
// Handle 0 is reserved and always invalid.
type Handle uint64

// EventType identifies a handle lifecycle transition.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event describes a handle lifecycle transition.
type Event struct {
	Value  any
	Handle Handle
	KindID uint32
	Type   EventType
}

// Observer receives handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by container values that need
// cleanup when their handle is destroyed.
type Dropper interface {
	Drop()
}
