package storage

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

	"github.com/san-kum/rigposer/internal/anim"
)

// DefaultDir is the library directory used when none is configured.
const DefaultDir = "savedAnimations"

const ext = ".json"

var (
	ErrInvalidName = errors.New("storage: invalid animation name")
	ErrNotFound    = errors.New("storage: animation not found")
)

// Library stores animation documents as files in one flat directory.
// Callers name files; only the base name is ever used.
type Library struct {
	baseDir string
}

func New(baseDir string) *Library {
	if baseDir == "" {
		baseDir = DefaultDir
	}
	return &Library{baseDir: baseDir}
}

func (l *Library) Dir() string { return l.baseDir }

func (l *Library) Init() error {
	return os.MkdirAll(l.baseDir, 0755)
}

// CleanName reduces name to a file name inside the library, adding the
// .json extension when it has none.
func CleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if filepath.Ext(base) == "" {
		base += ext
	}
	return base, nil
}

// Path returns the file path name resolves to.
func (l *Library) Path(name string) (string, error) {
	base, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.baseDir, base), nil
}

// Save writes data under name and returns the resolved path.
func (l *Library) Save(name string, data []byte) (string, error) {
	path, err := l.Path(name)
	if err != nil {
		return "", err
	}
	if err := l.Init(); err != nil {
		return "", fmt.Errorf("create library: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (l *Library) Load(name string) ([]byte, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (l *Library) Delete(name string) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return err
	}
	return nil
}

// Info summarises one stored animation. Header fields are zero when the
// file is not a readable version 2 document.
type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Version   string    `json:"version"`
	FrameRate float64   `json:"frameRate"`
	MaxFrame  int       `json:"maxFrame"`
	Parts     int       `json:"parts"`
	Keyframes int       `json:"keyframes"`
	Legacy    bool      `json:"legacy"`
}

// List returns the library contents sorted by name. A missing directory is
// an empty library.
func (l *Library) List() ([]Info, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, err
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		info := Info{Name: entry.Name(), Size: fi.Size(), Modified: fi.ModTime()}
		if data, err := os.ReadFile(filepath.Join(l.baseDir, entry.Name())); err == nil {
			summarise(&info, data)
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func summarise(info *Info, data []byte) {
	if anim.IsLegacy(data) {
		info.Legacy = true
		return
	}
	var doc anim.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}
	info.Version = doc.Version
	if doc.FrameRate != nil {
		info.FrameRate = *doc.FrameRate
	}
	if doc.MaxFrame != nil {
		info.MaxFrame = *doc.MaxFrame
	}
	info.Parts = len(doc.KeyframesByBodyPart)
	for _, list := range doc.KeyframesByBodyPart {
		info.Keyframes += len(list)
	}
}
