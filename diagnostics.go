package dirstore

import (
	"log/slog"
	"sync/atomic"
)

// reportHook holds the current diagnostics function.
var reportHook atomic.Value

func init() {
	reportHook.Store(func(err error) {
		slog.Error("dirstore: unreportable failure", "error", err)
	})
}

// OnError installs fn as the diagnostics hook and returns the previous
// one. The hook receives every failure that has no caller to return to:
// deferred-write errors and errors swallowed by the lossy Value and
// SetValue accessors. The default hook logs through [log/slog].
//
// fn may be called concurrently from background workers.
func OnError(fn func(error)) (prev func(error)) {
	prev = reportHook.Load().(func(error))
	reportHook.Store(fn)

	return prev
}

// report funnels an unreportable failure to the diagnostics hook.
func report(err error) {
	reportHook.Load().(func(error))(err)
}
