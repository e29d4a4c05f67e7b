package buildenv

import "os"

// Source supplies configuration values by key. The process environment is
// the production source; tests substitute a Map.
type Source interface {
	Lookup(key string) (value string, ok bool)
}

// OS reads from the process environment.
type OS struct{}

func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Map is an in-memory Source for tests.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
