package internal

// MemoryKV keeps values in a map. Values do not outlive the process.
type MemoryKV struct {
	values map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

func (m *MemoryKV) Close() error { return nil }

func init() {
	RegisterBackend("memory", BackendFunc(func(string) (KeyValue, error) {
		return NewMemoryKV(), nil
	}))
}
