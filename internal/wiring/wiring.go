// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mutant/internal/adapters/cas"
	_ "go.trai.ch/mutant/internal/adapters/config"
	_ "go.trai.ch/mutant/internal/adapters/jvm"
	_ "go.trai.ch/mutant/internal/adapters/logger"
	_ "go.trai.ch/mutant/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/mutant/internal/app"
)
