package provisioning

// OutputMap holds output values produced by successfully provisioned
// stacks, keyed by output name. Outputs accumulate as the sequence
// advances and feed the parameter resolution of later units.
type OutputMap map[string]string

// Merge copies every entry of other into the map, overwriting
// existing keys.
func (m OutputMap) Merge(other OutputMap) {
	for k, v := range other {
		m[k] = v
	}
}

// Clone returns a copy of the map.
func (m OutputMap) Clone() OutputMap {
	out := make(OutputMap, len(m))
	out.Merge(m)
	return out
}
