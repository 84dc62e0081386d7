package services

import (
	"context"
	"sync"
	"time"

	"foodcart/logger"
	"foodcart/models"
)

// HookTimeout bounds each order hook call.
var HookTimeout = 30 * time.Second

var (
	log = logger.Nop()

	hooksMu        sync.RWMutex
	onOrderCreated func(ctx context.Context, o *models.Order)
	onOrderUpdated func(ctx context.Context, orderID int64)
)

// SetLogger replaces the package logger. nil restores the no-op logger.
func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	log = l.With("component", "store")
}

// SetOnOrderCreated registers fn to run after an order has been committed.
// fn runs in its own goroutine with a context detached from the caller's
// and limited to HookTimeout.
func SetOnOrderCreated(fn func(ctx context.Context, o *models.Order)) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	onOrderCreated = fn
}

// SetOnOrderUpdated registers fn to run after a line item has been committed
// to an order. It runs like the order-created hook.
func SetOnOrderUpdated(fn func(ctx context.Context, orderID int64)) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	onOrderUpdated = fn
}

func fireOrderCreated(o *models.Order) {
	hooksMu.RLock()
	fn := onOrderCreated
	hooksMu.RUnlock()
	if fn == nil {
		return
	}
	cp := *o
	go runHook(func(ctx context.Context) { fn(ctx, &cp) })
}

func fireOrderUpdated(orderID int64) {
	hooksMu.RLock()
	fn := onOrderUpdated
	hooksMu.RUnlock()
	if fn == nil {
		return
	}
	go runHook(func(ctx context.Context) { fn(ctx, orderID) })
}

func runHook(call func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), HookTimeout)
	defer cancel()
	call(ctx)
}
