package sim

// AnalyticValues are closed-form reference values for a configuration,
// reported next to the estimates.
type AnalyticValues struct {
	Utilization         float64 `yaml:"utilization"`
	MeanWait            float64 `yaml:"mean_wait"`
	VarianceWait        float64 `yaml:"variance_wait"`
	MeanQueueLength     float64 `yaml:"mean_queue_length"`
	VarianceQueueLength float64 `yaml:"variance_queue_length"`
	MeanOccupancy       float64 `yaml:"mean_occupancy"`
	MeanSojourn         float64 `yaml:"mean_sojourn"`
	MeanService         float64 `yaml:"mean_service"`
}

// MM1Analytic returns the steady-state M/M/1 values for utilization rho with
// unit service rate. Only the variance of the waiting time depends on the
// discipline.
func MM1Analytic(rho float64, d Discipline) AnalyticValues {
	idle := 1 - rho
	v := AnalyticValues{
		Utilization:         rho,
		MeanWait:            rho / idle,
		MeanQueueLength:     rho * rho / idle,
		VarianceQueueLength: (rho*rho + rho*rho*rho - rho*rho*rho*rho) / (idle * idle),
		MeanOccupancy:       rho / idle,
		MeanSojourn:         1 / idle,
		MeanService:         1,
	}
	switch d {
	case LCFS:
		v.VarianceWait = (2*rho - rho*rho + rho*rho*rho) / (idle * idle * idle)
	default:
		v.VarianceWait = (2*rho - rho*rho) / (idle * idle)
	}
	return v
}

// SelfCheckAnalytic returns the exact per-period values of the
// SelfCheckDurations cycle.
func SelfCheckAnalytic(d Discipline) AnalyticValues {
	v := AnalyticValues{
		Utilization:         5.0 / 6.0,
		MeanWait:            4.0 / 3.0,
		VarianceWait:        8.0 / 9.0,
		MeanQueueLength:     2.0 / 3.0,
		VarianceQueueLength: 5.0 / 9.0,
		MeanOccupancy:       3.0 / 2.0,
		MeanSojourn:         3,
		MeanService:         5.0 / 3.0,
	}
	if d == LCFS {
		v.VarianceWait = 14.0 / 9.0
	}
	return v
}
