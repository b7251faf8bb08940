package adam

import (
	"github.com/sirupsen/logrus"
)

// Recorder observes completed runs and rejected inputs, e.g. to export
// metrics. Implementations must be safe for concurrent use when runs are
// executed in parallel.
type Recorder interface {
	RecordRun(state State, result *Result)
	RecordValidationFailure(param string)
}

type nopRecorder struct{}

func (nopRecorder) RecordRun(State, *Result) {}
func (nopRecorder) RecordValidationFailure(string) {}

// Option customizes a run.
type Option func(*options)

type options struct {
	logger   logrus.FieldLogger
	recorder Recorder
}

// WithLogger sets the logger used for warnings and run lifecycle messages.
// Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets a Recorder that observes the run.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:   logrus.StandardLogger(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}
	return o
}
