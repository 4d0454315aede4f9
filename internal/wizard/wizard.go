package wizard

// Wizard tracks which step the form is on and the errors of the last attempt
// to advance.
type Wizard struct {
	Draft  Draft
	step   int
	errors FieldErrors
}

// New starts a wizard at the first step.
func New(d Draft) *Wizard {
	return &Wizard{Draft: d, errors: FieldErrors{}}
}

// Step is the current zero-based step.
func (w *Wizard) Step() int { return w.step }

// Errors are the field errors from the last Next call.
func (w *Wizard) Errors() FieldErrors { return w.errors }

// Next validates the current step and advances only when it passes.
func (w *Wizard) Next() bool {
	w.errors = ValidateStep(w.step, w.Draft)
	if !w.errors.Valid() {
		return false
	}
	if w.step < LastStep {
		w.step++
	}
	return true
}

// Prev goes back one step without validating.
func (w *Wizard) Prev() {
	if w.step > StepBasics {
		w.step--
	}
}

// Jump moves to an already visited step. Forward jumps are refused.
func (w *Wizard) Jump(step int) bool {
	if step < StepBasics || step >= w.step {
		return false
	}
	w.step = step
	return true
}
