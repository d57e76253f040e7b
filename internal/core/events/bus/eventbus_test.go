package bus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_, _ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_, _ string, handlers int, err error, _ time.Duration) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBus_PublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	sub, err := b.Subscribe("test.event", func(e Event) error {
		got = e
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())
	assert.Equal(t, "test.event", sub.EventType())

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", 123)))
	require.NotNil(t, got)
	assert.Equal(t, "tester", got.Source())
	assert.Equal(t, 123, got.Data())
	assert.False(t, got.Timestamp().IsZero())
}

func TestBus_DeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []string
	record := func(name string) EventHandler {
		return func(Event) error {
			order = append(order, name)
			return nil
		}
	}
	_, _ = b.Subscribe(Wildcard, record("wild"))
	_, _ = b.Subscribe("ev", record("first"))
	_, _ = b.Subscribe("ev", record("second"))
	_, _ = b.Subscribe("other", record("other"))

	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Equal(t, []string{"first", "second", "wild"}, order)
}

func TestBus_ErrorsAreJoined(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return nil })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)

	err = b.PublishBatch(NewEvent("x", "src", nil), NewEvent("y", "src", nil))
	assert.ErrorIs(t, err, errA)
}

func TestBus_TopicsIsolation(t *testing.T) {
	b := New()
	count1, count2 := 0, 0
	_, _ = b.SubscribeTopic("t1", "ev", func(Event) error { count1++; return nil })
	_, _ = b.SubscribeTopic("t2", "ev", func(Event) error { count2++; return nil })

	require.NoError(t, b.PublishToTopic("t1", NewEvent("ev", "src", nil)))
	assert.Equal(t, 1, count1)
	assert.Equal(t, 0, count2)

	topics := b.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, "t1", topics[0].Name)
	assert.Equal(t, 1, topics[0].Subs)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("ev", func(Event) error { calls++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, b.SubscriberCount(""))

	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Unsubscribe(nil))
	assert.False(t, sub.IsActive())
	assert.Equal(t, 0, b.SubscriberCount(""))

	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Zero(t, calls)
}

func TestBus_CancelDuringDelivery(t *testing.T) {
	b := New()
	calls := 0
	var second Subscription
	_, _ = b.Subscribe("ev", func(Event) error {
		return second.Cancel()
	})
	second, _ = b.Subscribe("ev", func(Event) error { calls++; return nil })

	require.NoError(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Zero(t, calls, "cancelled subscriptions are skipped")
}

func TestBus_NilHandler(t *testing.T) {
	_, err := New().Subscribe("ev", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestBus_FiltersAndObservers(t *testing.T) {
	b := New()
	obs := &testObserver{}
	b.AddObserver(obs)
	_, _ = b.Subscribe("ev", func(Event) error { return errors.New("fail") })

	reject := func(Event) bool { return false }
	require.NoError(t, b.PublishWithFilters(NewEvent("ev", "src", nil), reject))
	assert.Equal(t, uint64(1), b.Metrics().DroppedByFilters)
	assert.Zero(t, obs.publishCount)

	assert.Error(t, b.Publish(NewEvent("ev", "src", nil)))
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)
	assert.Error(t, obs.lastErr)

	m := b.Metrics()
	assert.Equal(t, uint64(1), m.Published)
	assert.Equal(t, uint64(1), m.Errors)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("ev", "src", nil))
	assert.Equal(t, 1, obs.publishCount)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	b := New()
	var mu sync.Mutex
	total := 0
	_, _ = b.Subscribe("ev", func(Event) error {
		mu.Lock()
		total++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Publish(NewEvent("ev", "src", j))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, total)
}
