// Package trace records what a measurement did round by round and attempt by
// attempt, for post-run analysis of the escalation loop.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoundRecord captures the batch statistics of one completed round.
type RoundRecord struct {
	Attempt             int     `yaml:"attempt"`
	Round               int     `yaml:"round"`
	RoundSize           int     `yaml:"round_size"`
	Clock               float64 `yaml:"clock"` // simulated time at the end of the round
	MeanWait            float64 `yaml:"mean_wait"`
	VarianceWait        float64 `yaml:"variance_wait"`
	MeanQueueLength     float64 `yaml:"mean_queue_length"`
	VarianceQueueLength float64 `yaml:"variance_queue_length"`
}

// AttemptRecord captures the verdict of one attempt of the escalation loop.
type AttemptRecord struct {
	Attempt              int      `yaml:"attempt"`
	RoundSize            int      `yaml:"round_size"`
	TransientEvents      int      `yaml:"transient_events"`
	WaitPrecision        float64  `yaml:"wait_precision"`
	QueueLengthPrecision float64  `yaml:"queue_length_precision"`
	WaitVarianceAgree    bool     `yaml:"wait_variance_agree"` // Student-t and chi-square intervals converge
	QueueVarianceAgree   bool     `yaml:"queue_variance_agree"`
	Converged            bool     `yaml:"converged"`
	Failures             []string `yaml:"failures,omitempty"`
}
