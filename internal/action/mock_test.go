package action

import (
	"context"
	"sync"

	"github.com/swatto/pdalert/internal/pagerduty"
)

// MockSender is a mock implementation of pagerduty.Sender for testing
type MockSender struct {
	SendFunc func(ctx context.Context, event *pagerduty.Event) pagerduty.Result
	Events   []*pagerduty.Event
	mu       sync.Mutex
}

// Send implements the pagerduty.Sender interface
func (m *MockSender) Send(ctx context.Context, event *pagerduty.Event) pagerduty.Result {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, event)
	}
	return &pagerduty.Success{StatusCode: 202, Body: pagerduty.SuccessBody{Status: "success", Message: "Event processed"}}
}

// CallCount returns the number of times Send was called
func (m *MockSender) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// mapOutputs collects outputs in memory.
type mapOutputs map[string]string

func (m mapOutputs) SetOutput(name, value string) error {
	m[name] = value
	return nil
}
