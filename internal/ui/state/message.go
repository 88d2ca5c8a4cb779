package state

import "time"

// Message is a status line that disappears once Expires has passed.
type Message struct {
	Text    string
	Expires time.Time
}

// NewMessage returns a message shown from now for ttl.
func NewMessage(text string, now time.Time, ttl time.Duration) *Message {
	return &Message{Text: text, Expires: now.Add(ttl)}
}

// Expired reports whether the message should be cleared at now.
func (m *Message) Expired(now time.Time) bool {
	return m == nil || now.After(m.Expires)
}
