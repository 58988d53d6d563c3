// Package bus is a small in-process pub/sub message bus.
//
// Topics are slices of string tokens. Subscriptions may use the MQTT-style
// wildcards "+" (exactly one token) and "#" (any remaining tokens, last
// position only). Retained messages are stored per concrete topic and
// replayed to new matching subscribers.
package bus

import (
	"sync"
)

// Wildcard tokens usable in subscription topics.
const (
	WildcardOne = "+"
	WildcardAll = "#"
)

// Topic is a sequence of string tokens, e.g. Topic{"env", "bmp0", "temperature"}.
type Topic []string

// T is a convenience constructor.
func T(tokens ...string) Topic { return Topic(tokens) }

// Message is one published datum.
type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// Subscription delivers matching messages on a bounded channel. When the
// channel is full the oldest queued message is dropped in favour of the new
// one.
type Subscription struct {
	pattern Topic
	ch      chan *Message
	conn    *Connection
}

func (s *Subscription) Topic() Topic             { return s.pattern }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// Bus routes messages between connections.
type Bus struct {
	mu       sync.RWMutex
	subs     []*Subscription
	retained map[string]*Message // keyed by joined concrete topic
	qLen     int
}

// NewBus creates a bus with the given per-subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		retained: make(map[string]*Message),
		qLen:     queueLen,
	}
}

// NewMessage builds a message for Publish.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// Publish delivers msg to every matching subscriber. A retained message is
// additionally stored under its topic; a retained message with a nil
// payload clears the stored one.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if match(sub.pattern, msg.Topic) {
			deliver(sub.ch, msg)
		}
	}

	if msg.Retained {
		key := joinTopic(msg.Topic)
		if msg.Payload == nil {
			delete(b.retained, key)
		} else {
			b.retained[key] = msg
		}
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, sub)

	// Replay retained messages matching the new pattern.
	for _, msg := range b.retained {
		if match(sub.pattern, msg.Topic) {
			deliver(sub.ch, msg)
		}
	}
}

func (b *Bus) removeSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// deliver enqueues without blocking, dropping the oldest message if the
// subscriber is behind.
func deliver(ch chan *Message, msg *Message) {
	select {
	case ch <- msg:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

// match reports whether a concrete topic matches a subscription pattern.
func match(pattern, topic Topic) bool {
	for i, tok := range pattern {
		if tok == WildcardAll {
			return i == len(pattern)-1
		}
		if i >= len(topic) {
			return false
		}
		if tok != WildcardOne && tok != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}

func joinTopic(t Topic) string {
	n := 0
	for _, tok := range t {
		n += len(tok) + 1
	}
	buf := make([]byte, 0, n)
	for i, tok := range t {
		if i > 0 {
			buf = append(buf, '/')
		}
		buf = append(buf, tok...)
	}
	return string(buf)
}

// Connection is one client of the bus; it owns its subscriptions.
type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string // diagnostic identity
}

// NewConnection creates a connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

// NewMessage builds a message for Publish.
func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) {
	c.bus.Publish(msg)
}

// Subscribe registers a subscription owned by this connection.
func (c *Connection) Subscribe(pattern Topic) *Subscription {
	sub := &Subscription{
		pattern: pattern,
		ch:      make(chan *Message, c.bus.qLen),
		conn:    c,
	}
	c.bus.addSubscription(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription owned by this connection.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.removeSubscription(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes all subscriptions and clears them.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.removeSubscription(sub)
		close(sub.ch)
	}
}
