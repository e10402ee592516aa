package alert

import "context"

// Alert is an operator-facing notice about a failing upstream.
type Alert struct {
	Code    string
	Message string
}

//go:generate go run go.uber.org/mock/mockgen -source=alert.go -destination=mocks/mock.go
type Notifier interface {
	// Notify delivers the alert on a best-effort basis. It never blocks on delivery.
	Notify(ctx context.Context, a Alert)
}

// Noop drops every alert.
type Noop struct{}

func (Noop) Notify(context.Context, Alert) {}
