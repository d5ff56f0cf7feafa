// Package chflow wraps channel receives and sends in a select against the
// context, so blocking channel operations honor cancellation and deadlines.
package chflow

import "context"

// Receive blocks until a value arrives on ch or ctx is done. The second
// return value is false when the context was canceled or the channel closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Send blocks until data is accepted by ch or ctx is done, reporting whether
// the value was sent.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}
