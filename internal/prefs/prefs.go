// Package prefs persists user preferences between sessions through gdata.
// Without a gdata manager it runs in memory only.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "prefs"
	prefsProperty = "editor"
	maxRecent     = 8
)

type CameraPrefs struct {
	Radius  float64    `yaml:"radius"`
	Theta   float64    `yaml:"theta"`
	Phi     float64    `yaml:"phi"`
	Target  [3]float64 `yaml:"target,flow"`
	Enabled bool       `yaml:"enabled"`
}

type Preferences struct {
	LastFile string      `yaml:"lastFile"`
	Recent   []string    `yaml:"recent"`
	Loop     bool        `yaml:"loop"`
	Speed    float64     `yaml:"speed"`
	Targets  []string    `yaml:"targets"`
	ShowHelp bool        `yaml:"showHelp"`
	Camera   CameraPrefs `yaml:"camera"`
}

func Defaults() *Preferences {
	return &Preferences{
		Loop:     true,
		Speed:    1.0,
		ShowHelp: true,
	}
}

func (p *Preferences) clone() *Preferences {
	c := *p
	c.Recent = append([]string(nil), p.Recent...)
	c.Targets = append([]string(nil), p.Targets...)
	return &c
}

// Manager loads and saves Preferences. The gdata manager may be nil.
type Manager struct {
	store *gdata.Manager
	prefs *Preferences
}

// Open creates a gdata-backed manager for appName, falling back to memory
// when the platform storage cannot be opened.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Prefs] Warning: gdata unavailable: %v (preferences will not persist)", err)
		store = nil
	}
	m, err := NewManager(store)
	if err != nil {
		log.Printf("[Prefs] Warning: %v (using defaults)", err)
	}
	return m
}

// NewManager loads existing preferences. The returned manager is usable
// even when err is non-nil.
func NewManager(store *gdata.Manager) (*Manager, error) {
	m := &Manager{store: store}
	err := m.Load()
	return m, err
}

// Persistent reports whether preferences reach disk.
func (m *Manager) Persistent() bool { return m.store != nil }

func (m *Manager) Load() error {
	m.prefs = Defaults()
	if m.store == nil {
		return nil
	}
	if !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("parse preferences: %w", err)
	}
	if loaded.Speed < 0 {
		loaded.Speed = 0
	}
	m.prefs = loaded
	log.Printf("[Prefs] Preferences loaded")
	return nil
}

// Save writes the preferences. In memory mode it does nothing.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	log.Printf("[Prefs] Preferences saved")
	return nil
}

// Get returns a copy of the current preferences.
func (m *Manager) Get() *Preferences {
	return m.prefs.clone()
}

// Update applies fn to the preferences in place.
func (m *Manager) Update(fn func(p *Preferences)) {
	fn(m.prefs)
	if m.prefs.Speed < 0 {
		m.prefs.Speed = 0
	}
}

// Touch records name as the last used file and moves it to the front of
// the recent list.
func (m *Manager) Touch(name string) {
	if name == "" {
		return
	}
	m.prefs.LastFile = name
	recent := []string{name}
	for _, r := range m.prefs.Recent {
		if r != name && len(recent) < maxRecent {
			recent = append(recent, r)
		}
	}
	m.prefs.Recent = recent
}
