// Package sim provides the core discrete-event simulation engine for the
// court docket simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - case.go: Case lifecycle (pending → scheduled → heard/adjourned → disposed)
//   - ripeness.go: the gating state machine that filters cases not yet ready
//   - engine.go: the daily loop, allocation, and outcome sampling
//
// # Architecture
//
// The sim package owns the daily state machine; supporting concerns live in
// sub-packages:
//   - sim/eventlog/: append-only audit trail and daily metrics sinks (CSV, SQLite)
//   - sim/workload/: deterministic synthetic case-pool generation
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - SchedulingPolicy: order ripe, eligible cases by priority (fifo/age/readiness)
//   - ParameterStore: empirically fit stage durations, adjournment
//     probabilities, and transition distributions
//
// Policies are selected by name at configuration time via a registry
// (IsValidPolicy / NewSchedulingPolicy); unknown names fail fast.
package sim
