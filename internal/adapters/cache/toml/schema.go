package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int               `toml:"version"`
	Namespaces []namespaceSchema `toml:"namespaces"`
}

type namespaceSchema struct {
	Name    string        `toml:"name"`
	Entries []entrySchema `toml:"entries"`
}

type entrySchema struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported drill cache schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) lookup(namespace, key string) (string, bool) {
	for _, ns := range s.Namespaces {
		if ns.Name != namespace {
			continue
		}
		for _, entry := range ns.Entries {
			if entry.Key == key {
				return entry.Value, true
			}
		}
	}

	return "", false
}

func (s *fileSchema) upsert(namespace, key, value string) {
	for i := range s.Namespaces {
		if s.Namespaces[i].Name != namespace {
			continue
		}
		for j := range s.Namespaces[i].Entries {
			if s.Namespaces[i].Entries[j].Key == key {
				s.Namespaces[i].Entries[j].Value = value
				return
			}
		}
		s.Namespaces[i].Entries = append(s.Namespaces[i].Entries, entrySchema{Key: key, Value: value})
		return
	}

	s.Namespaces = append(s.Namespaces, namespaceSchema{
		Name:    namespace,
		Entries: []entrySchema{{Key: key, Value: value}},
	})
}
