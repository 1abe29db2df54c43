package game

type EventType int

const (
	EventWallHit        EventType = iota // any tick that touched a wall
	EventRepositioned                    // safe-position search moved the car
	EventReset                           // car sent back to spawn
	EventSurfaceChanged                  // entered or left a slow-down patch
)

type Event struct {
	Type    EventType
	Vehicle int // index in the race
	X, Y    float64
	Speed   float64 // impact speed for wall hits, current speed otherwise
	Slow    bool    // EventSurfaceChanged: now on a slow surface
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
