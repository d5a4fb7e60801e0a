package mailer

import (
	"context"
	"sync"
)

// Recorder menyimpan email di memori. Dipakai test (dan bisa untuk preview).
type Recorder struct {
	mu   sync.Mutex
	Sent []Message
}

func (r *Recorder) Driver() string { return "recorder" }

func (r *Recorder) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, msg)
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.Sent))
	copy(out, r.Sent)
	return out
}
