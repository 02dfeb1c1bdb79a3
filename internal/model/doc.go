package model

// Package model defines the domain data structures shared by the orchestrator,
// the UI shell and the CLI: download requests and results, the per-request stage
// machine, progress snapshots, playlist entries and the closed error-kind set.
