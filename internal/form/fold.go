package form

// Policy decides which of several matching lines supplies a field value.
type Policy int

const (
	// FirstWins keeps the first non-empty value.
	FirstWins Policy = iota
	// LastWins lets every later non-empty value overwrite the earlier one.
	LastWins
)

func (p Policy) String() string {
	if p == LastWins {
		return "last-wins"
	}
	return "first-wins"
}

// fold accumulates one field across the lines of a document.
type fold struct {
	policy Policy
	value  string
	// seen is set once any line carried the field label, even with an empty value.
	seen bool
}

func (f *fold) done() bool { return f.policy == FirstWins && f.value != "" }

func (f *fold) offer(v string) {
	f.seen = true
	if v == "" || f.done() {
		return
	}
	f.value = v
}
