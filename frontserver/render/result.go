package render

// State is the state of a single fetch made while rendering a page.
type State uint8

const (
	// Pending is the zero value: the fetch has not been made or has not
	// finished.
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Result tracks the outcome of a fetch. Data is kept next to the Result by the
// page that owns it; a Result only knows whether that data can be shown.
type Result struct {
	State State
	Err   error
}

// Resolve sets the result from the fetch's error.
func (r *Result) Resolve(err error) {
	if err != nil {
		r.State = Failed
		r.Err = err
		return
	}

	r.State = Ready
	r.Err = nil
}

// Resolved returns a result resolved from err.
func Resolved(err error) (r Result) {
	r.Resolve(err)
	return
}

func (r Result) Pending() bool { return r.State == Pending }
func (r Result) Ready() bool   { return r.State == Ready }
func (r Result) Failed() bool  { return r.State == Failed }
