// Package orchestrator wires the schema → model builder → decorators →
// renderer pipeline behind a single entry point, with defaults for the
// registration form (embedded UI schema, vanilla renderer).
package orchestrator
