package validation

type fieldState uint8

const (
	stateRaw fieldState = iota
	stateTransformed
	stateValidated
)

// field проходит состояния raw -> transformed -> validated, назад не возвращается.
type field struct {
	chain  *Chain
	raw    string
	value  string
	state  fieldState
	errors []string
}

func newField(chain *Chain, raw string) *field {
	return &field{chain: chain, raw: raw, value: raw, state: stateRaw}
}

func (f *field) transform() {
	if f.state != stateRaw {
		return
	}
	f.value = f.chain.apply(f.raw)
	f.state = stateTransformed
}

func (f *field) validate(form map[string]string) {
	if f.state != stateTransformed {
		return
	}
	for _, c := range f.chain.checks {
		if !c.fn(f.value, form) {
			f.errors = append(f.errors, c.message)
		}
	}
	f.state = stateValidated
}
