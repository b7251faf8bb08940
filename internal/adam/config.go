package adam

// Config holds the Adam hyperparameters.
//
// Unlike most configs in this module, zero values are not replaced with
// defaults: MaxIter == 0 is rejected and NIterNoChange == 0 disables early
// stopping. Start from DefaultConfig and override fields.
type Config struct {
	MaxIter       int     // Maximum number of iterations (must be positive)
	NIterNoChange int     // Iterations without tol improvement before stopping; 0 disables
	Tol           float64 // Minimum objective decrease that counts as improvement
	Alpha         float64 // Step size
	Beta1         float64 // Decay of the first moment estimate, in [0, 1)
	Beta2         float64 // Decay of the second raw moment estimate, in [0, 1)
	Eps           float64 // Added to the denominator for numerical stability
}

// DefaultConfig returns the hyperparameters recommended by Kingma and Ba,
// plus early stopping after 10 stalled iterations.
//
//   - MaxIter: 200
//   - NIterNoChange: 10
//   - Tol: 1e-4
//   - Alpha: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func DefaultConfig() Config {
	return Config{
		MaxIter:       200,
		NIterNoChange: 10,
		Tol:           1e-4,
		Alpha:         0.001,
		Beta1:         0.9,
		Beta2:         0.999,
		Eps:           1e-8,
	}
}

// Largest eps that does not trigger a warning.
const epsWarnThreshold = 1e-1

// Validate checks every hyperparameter and returns the first violation as
// an *InvalidArgumentError. Comparisons are written so that NaN fails them.
func (c Config) Validate() error {
	if c.MaxIter < 1 {
		return invalidArgument("max_iter", c.MaxIter, "max_iter must be positive")
	}
	if !(c.Alpha > 0) {
		return invalidArgument("alpha", c.Alpha, "alpha must be positive")
	}
	if !(c.Eps > 0) {
		return invalidArgument("eps", c.Eps, "eps must be positive")
	}
	if c.NIterNoChange < 0 {
		return invalidArgument("n_iter_no_change", c.NIterNoChange, "n_iter_no_change must be nonnegative")
	}
	if !(c.Tol >= 0) {
		return invalidArgument("tol", c.Tol, "tol must be nonnegative")
	}
	if !inUnitInterval(c.Beta1) {
		return invalidArgument("beta_1", c.Beta1, "beta_1 must be inside [0, 1)")
	}
	if !inUnitInterval(c.Beta2) {
		return invalidArgument("beta_2", c.Beta2, "beta_2 must be inside [0, 1)")
	}
	return nil
}

// Warnings returns the non-fatal issues of a valid config.
func (c Config) Warnings() []Warning {
	var warnings []Warning
	if c.Eps > epsWarnThreshold {
		warnings = append(warnings, Warning{
			Param:   "eps",
			Message: "eps exceeds 1e-1; step sizes may be overly deflated. Consider passing a smaller value.",
		})
	}
	return warnings
}

func inUnitInterval(b float64) bool {
	return b >= 0 && b < 1
}
