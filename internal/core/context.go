package core

import "context"

type contextKey string

const (
	ctxKeyTrigger    contextKey = "load_trigger"
	ctxKeyRemoteAddr contextKey = "load_remote_addr"
)

// Load triggers recorded on LoadSummary.
const (
	TriggerDirect  = "direct"
	TriggerStartup = "startup"
	TriggerAPI     = "api"
	TriggerWatcher = "watcher"
)

// ContextWithTrigger records what started a load.
func ContextWithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, ctxKeyTrigger, trigger)
}

// ContextWithRemoteAddr records the client address of an API-triggered load.
func ContextWithRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, ctxKeyRemoteAddr, addr)
}

// TriggerFromContext returns the load trigger, TriggerDirect if none was set.
func TriggerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyTrigger).(string); ok && v != "" {
		return v
	}
	return TriggerDirect
}

// RemoteAddrFromContext extracts the client address from context.
func RemoteAddrFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRemoteAddr).(string); ok {
		return v
	}
	return ""
}
