// Package ui provides the Bubble Tea TUI for browsing restaurants.
package ui

import "github.com/abelbrown/aagag/internal/controller"

// DatasetLoaded is sent when a region's dataset request finishes.
type DatasetLoaded struct {
	controller.Loaded
}

// statusCleared drops a transient status line after a delay.
type statusCleared struct {
	seq int
}
