package projection

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"

	"github.com/goto/intake/domain"
)

// filterEnv is what a filter expression can see, e.g.
//
//	Status == "approved" && HasDeadline && DaysRemaining < 3
type filterEnv struct {
	DocumentID    string
	Name          string
	Email         string
	Department    string
	Responsible   string
	Progress      string
	Status        string
	Bucket        string
	HasDeadline   bool
	DaysRemaining int
	TimeConflict  bool
	Details       map[string]interface{}
}

func newFilterEnv(v *domain.RequestView) filterEnv {
	env := filterEnv{
		DocumentID:   v.DocumentID,
		Name:         v.Name,
		Email:        v.Email,
		Department:   v.Department,
		Responsible:  v.Responsible,
		Progress:     v.Progress,
		Status:       string(v.Status),
		Bucket:       string(v.Bucket),
		TimeConflict: v.TimeConflict,
		Details:      v.Details,
	}
	if v.DaysRemaining != nil {
		env.HasDeadline = true
		env.DaysRemaining = *v.DaysRemaining
	}
	if env.Details == nil {
		env.Details = map[string]interface{}{}
	}
	return env
}

// Filter is a compiled boolean expression over a request view.
type Filter struct {
	source  string
	program *vm.Program
}

func CompileFilter(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

func (f *Filter) String() string {
	return f.source
}

func (f *Filter) Match(v *domain.RequestView) (bool, error) {
	out, err := expr.Run(f.program, newFilterEnv(v))
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q on %q: %w", f.source, v.DocumentID, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

func (f *Filter) Apply(views []*domain.RequestView) ([]*domain.RequestView, error) {
	out := make([]*domain.RequestView, 0, len(views))
	for _, v := range views {
		ok, err := f.Match(v)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}
