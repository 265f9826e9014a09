package sigevent

type SignalEvent struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

// Externally observed vehicle count for a single lane, e.g. pushed by the
// vision pipeline over the status socket
type LaneCountEvent struct {
	Lane  int
	Count int
}

func (lce LaneCountEvent) Wrap() SignalEvent {
	return SignalEvent{Value: lce}
}

// Operator request to truncate the current green and advance immediately
type ForceSwitchEvent struct {
}

func (e *SignalEvent) EventType() string {
	switch e.Value.(type) {
	case LaneCountEvent:
		return "LaneCountEvent"
	case ForceSwitchEvent:
		return "ForceSwitchEvent"
	default:
		return "UnknownEvent"
	}
}
