package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus.
//
// Handlers subscribe by Event.Type() within a topic; the default topic is "".
// Delivery is synchronous and follows subscription order, so a publisher that
// emits events in a deterministic order observes deterministic handler calls.
// Handler errors are joined and returned from Publish. A subscription to
// Wildcard receives every event type of its topic after the exact-type
// subscribers.
type EventBus interface {
	Publish(event Event) error
	PublishToTopic(topic string, event Event) error
	// PublishWithFilters drops the event silently when any filter rejects it.
	PublishWithFilters(event Event, filters ...EventFilter) error
	PublishBatch(events ...Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. A nil subscription is ignored.
	Unsubscribe(sub Subscription) error

	// SubscriberCount reports the active subscriptions of a topic.
	SubscriberCount(topic string) int
	Topics() []TopicInfo

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	Metrics() EventBusMetrics
}

// Wildcard subscribes to every event type in a topic.
const Wildcard = "*"

// Event is an immutable message transported by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
	EventFilter  func(event Event) bool
)

type Subscription interface {
	ID() string
	Topic() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return
// quickly.
type EventBusObserver interface {
	OnPublish(topic, eventType string, event Event)
	OnDelivered(topic, eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	DroppedByFilters  uint64
}

type TopicInfo struct {
	Name       string
	EventTypes int
	Subs       int
}
