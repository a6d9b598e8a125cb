package config

// ParameterSet is an ordered mapping of parameter name to string value.
// Insertion order is preserved so backend calls and log output stay
// deterministic across invocations.
type ParameterSet struct {
	keys   []string
	values map[string]string
}

// NewParameterSet creates an empty parameter set.
func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: make(map[string]string)}
}

// Set stores a value, keeping the key's first-insertion position.
func (p *ParameterSet) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *ParameterSet) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *ParameterSet) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters.
func (p *ParameterSet) Len() int {
	return len(p.keys)
}
