// Package registry persists the list of miners the user has saved.
// Miners are stored as [[miner]] tables in ~/.config/axedeck/miners.toml.
package registry

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

var (
	// ErrNotFound indicates no saved miner has the given id.
	ErrNotFound = errors.New("miner not found")

	// ErrDuplicateAddress indicates a miner with the same address is already saved.
	ErrDuplicateAddress = errors.New("miner address already saved")
)

// Miner is one saved device.
type Miner struct {
	ID      string    `toml:"id"`
	Name    string    `toml:"name"`
	Address string    `toml:"address"`
	AddedAt time.Time `toml:"added_at"`
}

// DisplayName returns the name, or the address when unnamed.
func (m Miner) DisplayName() string {
	if name := strings.TrimSpace(m.Name); name != "" {
		return name
	}
	return m.Address
}

type fileFormat struct {
	Miners []Miner `toml:"miner"`
}

// Registry is the in-memory list of saved miners backed by a TOML file.
type Registry struct {
	mu     sync.RWMutex
	path   string
	miners []Miner
	now    func() time.Time
}

// Open loads the registry at path. A missing file yields an empty registry.
func Open(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("registry path is empty")
	}
	r := &Registry{path: path, now: time.Now}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("open miners file: %w", err)
	}
	bytes, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return nil, fmt.Errorf("read miners file: %w", err)
	}
	var raw fileFormat
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("parse miners file: %w", err)
	}

	// Hand edits can leave rows without ids or with repeated addresses.
	// Keep the first row per address and persist any repairs once so ids
	// stay stable across launches.
	seenAddr := make(map[string]bool, len(raw.Miners))
	seenID := make(map[string]bool, len(raw.Miners))
	repaired := false
	for _, m := range raw.Miners {
		addr, err := NormalizeAddress(m.Address)
		if err != nil {
			repaired = true
			continue
		}
		if seenAddr[addr] {
			repaired = true
			continue
		}
		seenAddr[addr] = true
		if addr != m.Address {
			m.Address = addr
			repaired = true
		}
		if m.ID == "" || seenID[m.ID] {
			m.ID = uuid.NewString()
			repaired = true
		}
		seenID[m.ID] = true
		r.miners = append(r.miners, m)
	}
	if repaired {
		if err := r.saveLocked(); err != nil {
			return nil, fmt.Errorf("save repaired miners file: %w", err)
		}
	}
	return r, nil
}

// Path returns the backing file path.
func (r *Registry) Path() string {
	return r.path
}

// List returns a copy of the saved miners in insertion order.
func (r *Registry) List() []Miner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Miner, len(r.miners))
	copy(out, r.miners)
	return out
}

// Find returns the miner with the given id.
func (r *Registry) Find(id string) (Miner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.miners[i], true
	}
	return Miner{}, false
}

// FindByAddress returns the miner saved under address.
func (r *Registry) FindByAddress(address string) (Miner, bool) {
	addr, err := NormalizeAddress(address)
	if err != nil {
		return Miner{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.miners {
		if m.Address == addr {
			return m, true
		}
	}
	return Miner{}, false
}

// Add saves a new miner and persists the registry.
func (r *Registry) Add(name, address string) (Miner, error) {
	addr, err := NormalizeAddress(address)
	if err != nil {
		return Miner{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.miners {
		if m.Address == addr {
			return Miner{}, fmt.Errorf("%w: %s", ErrDuplicateAddress, addr)
		}
	}
	m := Miner{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Address: addr,
		AddedAt: r.now().UTC().Truncate(time.Second),
	}
	r.miners = append(r.miners, m)
	if err := r.saveLocked(); err != nil {
		r.miners = r.miners[:len(r.miners)-1]
		return Miner{}, err
	}
	return m, nil
}

// Rename changes a miner's display name.
func (r *Registry) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("miner name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	prev := r.miners[i].Name
	r.miners[i].Name = name
	if err := r.saveLocked(); err != nil {
		r.miners[i].Name = prev
		return err
	}
	return nil
}

// Remove deletes a saved miner.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	prev := append([]Miner(nil), r.miners...)
	r.miners = append(r.miners[:i], r.miners[i+1:]...)
	if err := r.saveLocked(); err != nil {
		r.miners = prev
		return err
	}
	return nil
}

func (r *Registry) indexOf(id string) int {
	for i, m := range r.miners {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create miners dir: %w", err)
	}
	bytes, err := toml.Marshal(fileFormat{Miners: r.miners})
	if err != nil {
		return fmt.Errorf("marshal miners: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write miners: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace miners file: %w", err)
	}
	return nil
}

// NormalizeAddress reduces user input ("http://10.0.0.5/", " bitaxe.local ")
// to a bare host or host:port.
func NormalizeAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", fmt.Errorf("miner address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse miner address %q: %w", address, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("miner address %q has no host", address)
	}
	return strings.ToLower(u.Host), nil
}
