package event

import (
	"go.uber.org/zap"
)

var listeners = make([]*Listener, 0)

type Listener struct {
	eventType Type
	callback  func(msg interface{})
}

func AddEventListener(eventType Type, callback func(msg interface{})) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	listeners = append(listeners, &Listener{
		eventType: eventType,
		callback:  callback,
	})
}

// EmitEvent dispatches synchronously, in registration order. Listeners run on
// the emitting goroutine so subscribers observe events before the operation
// returns to its caller.
func EmitEvent(eventType Type, msg interface{}) {
	if len(listeners) == 0 {
		zap.L().Debug("No event listeners available")
	}
	for _, listener := range listeners {
		if listener.eventType == eventType {
			zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: Emitting event")
			listener.callback(msg)
		}
	}
}
