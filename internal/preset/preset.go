// Package preset persists named filter states so an exploration can be
// resumed later.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/utils"
)

const storeFileName = "presets.json"

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset not found")

// Preset is a saved filter state.
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Column    string    `json:"column"`
	Lo        float64   `json:"lo"`
	Hi        float64   `json:"hi"`
	GPAText   string    `json:"gpa_text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State converts the preset back into a filter state.
func (p Preset) State() filter.State {
	return filter.State{Column: p.Column, Lo: p.Lo, Hi: p.Hi, GPAText: p.GPAText}
}

// Store is a presets.json file in a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is read or created until
// the first call.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Path returns the backing file path.
func (s *Store) Path() string { return filepath.Join(s.dir, storeFileName) }

// List returns all presets sorted by name.
func (s *Store) List() ([]Preset, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// Get returns the preset called name.
func (s *Store) Get(name string) (Preset, error) {
	items, err := s.load()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range items {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Save stores st under name, replacing an existing preset of the same name.
// The replaced preset keeps its ID and creation time.
func (s *Store) Save(name string, st filter.State) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, errors.New("preset name is required")
	}
	items, err := s.load()
	if err != nil {
		return Preset{}, err
	}
	now := time.Now().UTC()
	p := Preset{
		ID:        uuid.NewString(),
		Name:      name,
		Column:    st.Column,
		Lo:        st.Lo,
		Hi:        st.Hi,
		GPAText:   st.GPAText,
		CreatedAt: now,
		UpdatedAt: now,
	}
	replaced := false
	for i := range items {
		if items[i].Name == name {
			p.ID, p.CreatedAt = items[i].ID, items[i].CreatedAt
			items[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, p)
	}
	if err := s.write(items); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Delete removes the preset called name.
func (s *Store) Delete(name string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, p := range items {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.write(kept)
}

func (s *Store) load() ([]Preset, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var items []Preset
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", s.Path(), err)
	}
	return items, nil
}

func (s *Store) write(items []Preset) error {
	if items == nil {
		items = []Preset{}
	}
	data, err := utils.PrettyJSON(items)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(s.Path(), data); err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}
