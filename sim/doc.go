// Package sim provides the discrete-event job scheduling engine for jobsched.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job (arrival record) and Process (admitted runtime instance)
//   - event.go: external commands (configure, arrival, display, policy switch)
//   - simulator.go: the merged event loop over external commands and CPU decisions
//
// # Architecture
//
// The simulation context (Simulator) owns every piece of mutable state:
//   - ResourcePool: memory/device accounting, clamped to [0, total]
//   - AdmissionManager: ready queue plus the two hold queues
//   - ProcessScheduler: the single CPU slot and its dispatch step
//   - Timeline: pending external commands ordered by (time, kind rank, input order)
//
// Sub-packages stay free of simulation state:
//   - sim/workload/: parses raw command lines into Command values and
//     generates synthetic command files (seeded through PartitionedRNG)
//   - sim/report/: renders status snapshots and exports finished records
//   - sim/trace/: decision trace recording
//
// # Key Interfaces
//
//   - QuantumPolicy: choose the time slice for the process being dispatched
//   - Command: a timestamped external command executed against the Simulator
//   - Reporter: receives status snapshots and one-line notices
package sim
