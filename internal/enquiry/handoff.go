package enquiry

// Handoff is a single-use slot through which the command line or another
// view seeds the next search, e.g. "job instances of batch instance N".
type Handoff struct {
	pending *Fields
}

func NewHandoff() *Handoff {
	return &Handoff{}
}

// Put replaces whatever was waiting in the slot.
func (h *Handoff) Put(partial Fields) {
	h.pending = &partial
}

// Take empties the slot.
func (h *Handoff) Take() (Fields, bool) {
	if h == nil || h.pending == nil {
		return Fields{}, false
	}
	f := *h.pending
	h.pending = nil
	return f, true
}

func (h *Handoff) Pending() bool {
	return h != nil && h.pending != nil
}
