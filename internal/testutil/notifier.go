package testutil

import (
	"context"
	"sync"
)

// SentNotification is one call recorded by FakeNotifier.
type SentNotification struct {
	Kind   string
	To     string
	Name   string
	Link   string
	Title  string
	Status string
}

// FakeNotifier records notifications instead of sending them. Err, when set, is returned from every call.
type FakeNotifier struct {
	mu   sync.Mutex
	sent []SentNotification
	Err  error
}

func (n *FakeNotifier) SendPasswordReset(ctx context.Context, to, name, link string) error {
	n.record(SentNotification{Kind: "password_reset", To: to, Name: name, Link: link})
	return n.Err
}

func (n *FakeNotifier) SendApplicationStatusChanged(ctx context.Context, to, name, vacancyTitle, status string) error {
	n.record(SentNotification{Kind: "application_status", To: to, Name: name, Title: vacancyTitle, Status: status})
	return n.Err
}

func (n *FakeNotifier) record(s SentNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, s)
}

func (n *FakeNotifier) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SentNotification(nil), n.sent...)
}

// Last returns the most recent notification and false when nothing was sent.
func (n *FakeNotifier) Last() (SentNotification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return SentNotification{}, false
	}
	return n.sent[len(n.sent)-1], true
}
