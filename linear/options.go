package linear

// Option is a function that configures LogisticRegression.
type Option func(*LogisticRegression)

// WithPenalty sets the regularization type ("l2" or "none").
func WithPenalty(penalty string) Option {
	return func(lr *LogisticRegression) {
		lr.penalty = penalty
	}
}

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) {
		lr.c = c
	}
}

// WithFitIntercept sets whether to fit an intercept term.
func WithFitIntercept(fit bool) Option {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithMaxIter sets the iteration cap for the solver.
func WithMaxIter(maxIter int) Option {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the stopping tolerance.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithRandomState sets the random seed for weight initialization.
func WithRandomState(seed int64) Option {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
	}
}
