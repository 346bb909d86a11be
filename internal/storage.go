package internal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStorageKey is the key the subscription collection is stored under
const DefaultStorageKey = "subscriptions"

// KeyValue is a minimal blob store, one opaque value per key
type KeyValue interface {
	// Get returns the value for key. found is false if the key was never set.
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Close() error
}

// Codec serialises the subscription collection
type Codec interface {
	Name() string
	Marshal(subs []Subscription) ([]byte, error)
	Unmarshal(data []byte) ([]Subscription, error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(subs []Subscription) ([]byte, error) {
	return json.Marshal(subs)
}

func (jsonCodec) Unmarshal(data []byte) ([]Subscription, error) {
	var subs []Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(subs []Subscription) ([]byte, error) {
	return yaml.Marshal(subs)
}

func (yamlCodec) Unmarshal(data []byte) ([]Subscription, error) {
	var subs []Subscription
	if err := yaml.Unmarshal(data, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetCodec returns the codec for a format name ("json" or "yaml").
// An empty name selects json.
func GetCodec(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return jsonCodec{}, nil
	case "yaml", "yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown storage format: %s (available: json, yaml)", format)
	}
}

// BlobPersister stores the whole collection as one value under Key
type BlobPersister struct {
	KV    KeyValue
	Key   string
	Codec Codec
}

// Load returns an empty collection when nothing has been saved yet
func (p *BlobPersister) Load() ([]Subscription, error) {
	data, found, err := p.KV.Get(p.Key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", p.Key, err)
	}
	if !found || len(data) == 0 {
		return nil, nil
	}
	subs, err := p.Codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %q as %s: %w", p.Key, p.Codec.Name(), err)
	}
	return subs, nil
}

func (p *BlobPersister) Save(subs []Subscription) error {
	if subs == nil {
		subs = []Subscription{}
	}
	data, err := p.Codec.Marshal(subs)
	if err != nil {
		return fmt.Errorf("encoding %q as %s: %w", p.Key, p.Codec.Name(), err)
	}
	if err := p.KV.Set(p.Key, data); err != nil {
		return fmt.Errorf("writing %q: %w", p.Key, err)
	}
	return nil
}

// Backend opens a KeyValue at the given location (file path, db path, ...)
type Backend interface {
	Open(location string) (KeyValue, error)
}

// BackendFunc is a function that implements Backend
type BackendFunc func(location string) (KeyValue, error)

func (f BackendFunc) Open(location string) (KeyValue, error) {
	return f(location)
}

// backends is the registry of available storage backends
var backends = map[string]Backend{}

// RegisterBackend registers a backend with the given name
func RegisterBackend(name string, b Backend) {
	backends[name] = b
}

// GetBackend returns the backend for the given name
func GetBackend(name string) (Backend, error) {
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %v)", name, AvailableBackends())
	}
	return b, nil
}

// AvailableBackends returns the registered backend names, sorted
func AvailableBackends() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownBackend returns true if the name is a registered backend
func IsKnownBackend(name string) bool {
	_, ok := backends[name]
	return ok
}

// ParseStoreArg splits a store argument that may have a backend prefix.
// Returns (backend, location). If no valid prefix, backend is empty.
// Example: "sqlite:subs.db" → ("sqlite", "subs.db")
// Example: "./data" → ("", "./data")
// Example: "C:\data" → ("", "C:\data") // Windows path
func ParseStoreArg(arg string) (backend, location string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownBackend(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// OpenPersister opens the named backend and wraps it in a BlobPersister.
// The caller closes the returned KeyValue.
func OpenPersister(backend, location, key, format string) (*BlobPersister, KeyValue, error) {
	b, err := GetBackend(backend)
	if err != nil {
		return nil, nil, err
	}
	codec, err := GetCodec(format)
	if err != nil {
		return nil, nil, err
	}
	if key == "" {
		key = DefaultStorageKey
	}
	kv, err := b.Open(location)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s storage at %q: %w", backend, location, err)
	}
	return &BlobPersister{KV: kv, Key: key, Codec: codec}, kv, nil
}
