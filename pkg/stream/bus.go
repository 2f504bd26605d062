package stream

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/robolab-org/go-armsim/pkg/types"
	"github.com/robolab-org/go-armsim/util"
)

var (
	ErrClosed              = errors.New("stream: bus closed")
	ErrDuplicateSubscriber = errors.New("stream: subscriber id already registered")
)

// Bus carries joint samples from the generator to any number of
// subscribers on a single named topic. Delivery preserves publish
// order per subscriber and never drops a sample: a slow subscriber
// backpressures the bus instead.
type Bus struct {
	topic     string
	ch        chan types.JointSample
	subs      map[string]chan types.JointSample
	subBuf    int
	mu        sync.RWMutex
	closed    bool
	published uint64
	done      chan struct{}
}

// NewBus creates a bus for one topic. subBuf sizes each subscriber
// channel; the internal channel uses the same capacity.
func NewBus(topic string, subBuf int) *Bus {
	if subBuf <= 0 {
		subBuf = 64
	}
	b := &Bus{
		topic:  topic,
		ch:     make(chan types.JointSample, subBuf),
		subs:   make(map[string]chan types.JointSample),
		subBuf: subBuf,
		done:   make(chan struct{}),
	}

	go b.run()
	return b
}

// Topic returns the topic name the bus was created with.
func (b *Bus) Topic() string {
	return b.topic
}

// run forwards samples to every subscriber in publish order. It owns
// the subscriber channels: they are closed here once the bus shuts
// down, never anywhere else except Unsubscribe.
func (b *Bus) run() {
	for sample := range b.ch {
		b.mu.RLock()
		for _, subCh := range b.subs {
			subCh <- sample
		}
		b.mu.RUnlock()
	}

	b.mu.Lock()
	for _, subCh := range b.subs {
		close(subCh)
	}
	b.subs = nil
	b.mu.Unlock()
	close(b.done)
}

// Subscribe registers a subscriber and returns its receive channel.
// An empty id gets a generated one.
func (b *Bus) Subscribe(id string) (string, <-chan types.JointSample, error) {
	if id == "" {
		id = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return "", nil, ErrClosed
	}
	if _, ok := b.subs[id]; ok {
		return "", nil, ErrDuplicateSubscriber
	}

	ch := make(chan types.JointSample, b.subBuf)
	b.subs[id] = ch
	util.Debug("subscriber '%s' attached to topic '%s'", id, b.topic)
	return id, ch, nil
}

// Unsubscribe detaches a subscriber and closes its channel. Unknown
// ids are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		return
	}
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
		util.Debug("subscriber '%s' detached from topic '%s'", id, b.topic)
	}
}

// Publish enqueues one sample for delivery to all subscribers.
func (b *Bus) Publish(sample types.JointSample) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	b.ch <- sample
	atomic.AddUint64(&b.published, 1)
	return nil
}

// Close stops the bus. Subscriber channels are closed after all
// already-published samples have been delivered. Safe to call twice.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	close(b.ch)
	<-b.done
	util.Info("topic '%s' bus closed after %d samples", b.topic, atomic.LoadUint64(&b.published))
}

// Published returns the number of samples accepted so far.
func (b *Bus) Published() uint64 {
	return atomic.LoadUint64(&b.published)
}

// SubscriberCount returns the number of attached subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
