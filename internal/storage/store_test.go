package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rigposer/internal/anim"
	"github.com/san-kum/rigposer/internal/rig"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"walk.json", "walk.json", false},
		{"walk", "walk.json", false},
		{"../../etc/passwd", "passwd.json", false},
		{"/tmp/clips/jump.json", "jump.json", false},
		{"", "", true},
		{".", "", true},
		{"..", "", true},
		{"   ", "", true},
	}
	for _, tc := range tests {
		got, err := CleanName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("CleanName(%q): expected ErrInvalidName, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("CleanName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestLibrarySaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib")
	lib := New(dir)

	tl := anim.New()
	tl.SetKeyframe(0, rig.NewAngles())
	tl.SetKeyframe(240, rig.NewAngles(), rig.PartHead)
	data, err := tl.Export()
	if err != nil {
		t.Fatal(err)
	}

	path, err := lib.Save("sub/dir/wave", data)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if path != filepath.Join(dir, "wave.json") {
		t.Errorf("unexpected path %s", path)
	}

	got, err := lib.Load("wave.json")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != string(data) {
		t.Error("loaded data differ")
	}

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "old.json"), []byte(`{"keyframes": []}`), 0644)

	infos, err := lib.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(infos))
	}
	if infos[0].Name != "old.json" || !infos[0].Legacy {
		t.Errorf("unexpected first entry %+v", infos[0])
	}
	w := infos[1]
	if w.Version != "2.0" || w.MaxFrame != 600 || w.Parts != 12 || w.Keyframes != 13 {
		t.Errorf("unexpected summary %+v", w)
	}
}

func TestLibraryMissing(t *testing.T) {
	lib := New(filepath.Join(t.TempDir(), "none"))
	infos, err := lib.List()
	if err != nil || len(infos) != 0 {
		t.Errorf("missing dir should list empty, got %v, %v", infos, err)
	}
	if _, err := lib.Load("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := lib.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := lib.Save("..", nil); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}
