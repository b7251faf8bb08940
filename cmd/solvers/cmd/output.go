package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/solvers/internal/adam"
)

// summary is the serialized form of one finished run.
type summary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Problem   string    `json:"problem" yaml:"problem"`
	State     string    `json:"state" yaml:"state"`
	X         []float64 `json:"x" yaml:"x"`
	Fx        float64   `json:"fx" yaml:"fx"`
	Grad      []float64 `json:"grad" yaml:"grad"`
	NObjEval  int       `json:"n_obj_eval" yaml:"n_obj_eval"`
	NGradEval int       `json:"n_grad_eval" yaml:"n_grad_eval"`
	NIter     int       `json:"n_iter" yaml:"n_iter"`
	Warnings  []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newSummary(problem string, r *adam.Report) summary {
	s := summary{
		RunID:     r.RunID,
		Problem:   problem,
		State:     r.State.String(),
		X:         r.Result.X().Data(),
		Fx:        r.Result.Fx(),
		Grad:      r.Result.Grad().Data(),
		NObjEval:  r.Result.NObjEval(),
		NGradEval: r.Result.NGradEval(),
		NIter:     r.Result.NIter(),
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}
	return s
}

func writeSummary(w io.Writer, format string, problem string, r *adam.Report) error {
	switch strings.ToLower(format) {
	case "text":
		if _, err := fmt.Fprintln(w, r.Result); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "state: %s\n", r.State)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.WithStack(enc.Encode(newSummary(problem, r)))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newSummary(problem, r)); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(enc.Close())
	}
	return errors.Errorf("unknown output format %q (want text, json or yaml)", format)
}
