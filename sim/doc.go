// Package sim provides the discrete-event engine and batch-means driver for a
// single-server M/M/1 queue.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (arrival → service start → departure) and the generation tag
//   - event.go: the two-slot calendar (next Arrival, next EndOfService)
//   - simulator.go: the event loop, warm-up detector and per-round collection
//   - driver.go: rounds, confidence intervals and the escalation loop
//
// # Architecture
//
// A Simulator owns the clock, the waiting line (FCFS or LCFS), the server and
// a DurationSource. RunRound advances it until a fixed number of departures of
// the current generation have been observed and returns a RoundStats batch.
// Customers that arrived during an earlier round still complete normally but
// are not counted, so rounds are built from disjoint customers.
//
// The Driver repeats rounds, turns the per-round means and variances into
// Student-t and chi-square intervals (interval.go) and grows the round size
// until the stop conditions hold or MaxEscalations is reached.
//
// Sub-packages:
//   - sim/trace/: per-attempt and per-round decision trace
//   - sim/report/: CSV result rows and YAML run summaries
//
// # Randomness
//
// Interarrival and service draws come from separate partitioned streams
// (rng.go), so changing the utilization never perturbs the service sequence.
// SelfCheckDurations replaces both with a fixed cycle whose per-period
// statistics are known exactly.
package sim
