// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ember/internal/adapters/config"
	_ "go.trai.ch/ember/internal/adapters/fs"
	_ "go.trai.ch/ember/internal/adapters/gallery"
	_ "go.trai.ch/ember/internal/adapters/httpdl"
	_ "go.trai.ch/ember/internal/adapters/java"
	_ "go.trai.ch/ember/internal/adapters/logger"
	_ "go.trai.ch/ember/internal/adapters/proc"
	_ "go.trai.ch/ember/internal/adapters/progress"
	_ "go.trai.ch/ember/internal/adapters/store"
	_ "go.trai.ch/ember/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/ember/internal/app"
	_ "go.trai.ch/ember/internal/engine/crash"
	_ "go.trai.ch/ember/internal/engine/installer"
	_ "go.trai.ch/ember/internal/engine/launch"
	_ "go.trai.ch/ember/internal/engine/resolver"
)
