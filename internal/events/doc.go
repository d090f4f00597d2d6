// Package events provides in-process domain events.
//
// Services emit events without knowing which handlers consume them. The
// only event today is SessionCompleted, published after a session's
// completing update has been committed.
package events
