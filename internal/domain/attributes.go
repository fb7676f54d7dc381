package domain

// attributes is an insertion-ordered bag of dynamic fields.
type attributes struct {
	keys   []string
	values map[string]any
}

func (a *attributes) get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

func (a *attributes) set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *attributes) delete(key string) {
	if _, exists := a.values[key]; !exists {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

func (a *attributes) len() int {
	return len(a.keys)
}
