package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// EnvPathOverride names the environment variable that relocates the config
// file, mainly for tests and sandboxed shells.
const EnvPathOverride = "MODELMGR_CONFIG"

// Store owns the profile list and the active-profile pointer. Every mutation
// is written through to disk immediately; the in-memory state is the source
// of truth between writes.
type Store struct {
	path string

	mu       sync.Mutex
	profiles []Profile
	active   string
}

// NewStore opens the store at the default location
// (~/.claude_model_manager/config.json, or $MODELMGR_CONFIG when set).
// A missing file is created as an empty document right away.
func NewStore() (*Store, error) {
	if override := os.Getenv(EnvPathOverride); override != "" {
		return NewStoreAt(override)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewStoreAt(filepath.Join(homeDir, ".claude_model_manager", "config.json"))
}

// NewStoreAt opens the store backed by the given file path.
func NewStoreAt(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	s := &Store{path: path}
	s.load()

	// Persist an empty document so a fresh install has a file to read.
	if !fileExists(path) {
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the location of the backing config file.
func (s *Store) Path() string {
	return s.path
}

// ActiveEnvPath returns the location of the generated active.env file,
// which lives next to the config file.
func (s *Store) ActiveEnvPath() string {
	return filepath.Join(filepath.Dir(s.path), "active.env")
}

// load reads the persisted document into memory. It fails soft: a file that
// cannot be read or parsed is logged and replaced by an empty document, so a
// corrupted config never blocks startup. Duplicate names keep the last
// occurrence's values at the first occurrence's position.
func (s *Store) load() {
	s.profiles = nil
	s.active = ""

	file, err := os.OpenFile(s.path, os.O_RDONLY, 0600)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("config file unreadable, starting empty")
		}
		return
	}
	defer file.Close()

	if err := lockFileShared(file); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to lock config file, starting empty")
		return
	}
	defer unlockFile(file)

	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("config file unreadable, starting empty")
		return
	}
	if len(data) == 0 {
		return
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("config file corrupted, starting empty")
		return
	}

	s.profiles = dedupeProfiles(doc.Models)
	if doc.CurrentModel != nil {
		s.active = *doc.CurrentModel
	}
	// The active pointer must always name an existing profile.
	if s.active != "" && s.indexOf(s.active) < 0 {
		log.Warn().Str("profile", s.active).Msg("active profile missing from config, clearing")
		s.active = ""
	}
}

// dedupeProfiles resolves duplicate names: the last occurrence wins, placed
// at the position of the first.
func dedupeProfiles(in []Profile) []Profile {
	seen := make(map[string]int, len(in))
	out := make([]Profile, 0, len(in))
	for _, p := range in {
		if i, ok := seen[p.Name]; ok {
			out[i] = p
			continue
		}
		seen[p.Name] = len(out)
		out = append(out, p)
	}
	return out
}

// save serializes the full document and writes it under an exclusive lock.
// A failed write leaves the in-memory state untouched; the next successful
// save reconciles the file.
func (s *Store) save() error {
	doc := Document{Models: s.profiles}
	if doc.Models == nil {
		doc.Models = []Profile{}
	}
	if s.active != "" {
		active := s.active
		doc.CurrentModel = &active
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := lockFileExclusive(file); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer func() {
		if err := unlockFile(file); err != nil {
			log.Warn().Err(err).Msg("failed to unlock config file")
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync config file: %w", err)
	}
	return nil
}

func (s *Store) indexOf(name string) int {
	for i, p := range s.profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Add inserts a new profile and persists. Names are compared case-sensitively.
func (s *Store) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.Name) >= 0 {
		return fmt.Errorf("%q: %w", p.Name, ErrAlreadyExists)
	}
	s.profiles = append(s.profiles, p)
	return s.save()
}

// Update replaces the profile stored under oldName with p. When p.Name
// differs from oldName this is a rename: the entry moves to the new name and
// the active pointer follows it. A rename onto an existing name replaces
// that entry.
func (s *Store) Update(oldName string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(oldName)
	if i < 0 {
		return fmt.Errorf("%q: %w", oldName, ErrNotFound)
	}

	if p.Name != oldName {
		if j := s.indexOf(p.Name); j >= 0 {
			s.profiles = append(s.profiles[:j], s.profiles[j+1:]...)
			if j < i {
				i--
			}
		}
		if s.active == oldName {
			s.active = p.Name
		}
	}
	s.profiles[i] = p
	return s.save()
}

// Delete removes the named profile and persists. Deleting the active profile
// clears the active pointer.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	if s.active == name {
		s.active = ""
	}
	return s.save()
}

// Get returns the named profile.
func (s *Store) Get(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(name); i >= 0 {
		return s.profiles[i], nil
	}
	return Profile{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// List returns all profiles in document order.
func (s *Store) List() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// SetActive marks the named profile active and persists.
func (s *Store) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name) < 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.active = name
	return s.save()
}

// Active returns the active profile, if one is set.
func (s *Store) Active() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return Profile{}, false
	}
	if i := s.indexOf(s.active); i >= 0 {
		return s.profiles[i], true
	}
	return Profile{}, false
}

// ActiveName returns the name of the active profile, or "".
func (s *Store) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
