package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceBuiltin(t *testing.T) {
	for _, role := range []Role{Display, Italic, Sans, Script, Mono, Wide} {
		t.Run(role.String(), func(t *testing.T) {
			face, err := Face(role, 24)
			if err != nil {
				t.Fatalf("Face(%s): %v", role, err)
			}
			m := face.Metrics()
			if m.Height <= 0 {
				t.Errorf("height = %v, want > 0", m.Height)
			}
		})
	}
}

func TestSetOverride(t *testing.T) {
	set := NewSet()
	if err := set.Override(Script, goregular.TTF); err != nil {
		t.Fatalf("Override: %v", err)
	}
	if _, err := set.Face(Script, 12); err != nil {
		t.Fatalf("Face: %v", err)
	}

	if err := set.Override(Script, []byte("not a font")); err == nil {
		t.Error("expected error for invalid ttf")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := NewSet().LoadFile(Mono, "/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseRole(t *testing.T) {
	for r, name := range roleNames {
		got, err := ParseRole(name)
		if err != nil || got != r {
			t.Errorf("ParseRole(%q) = %v, %v; want %v", name, got, err, r)
		}
	}
	if _, err := ParseRole("gothic"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec     string
		wantRole Role
		wantPath string
		wantErr  bool
	}{
		{"script=GreatVibes.ttf", Script, "GreatVibes.ttf", false},
		{" display = /fonts/Serif Bold.ttf ", Display, "/fonts/Serif Bold.ttf", false},
		{"mono=a=b.ttf", Mono, "a=b.ttf", false},
		{"script", 0, "", true},
		{"script=", 0, "", true},
		{"gothic=x.ttf", 0, "", true},
	}
	for _, tt := range tests {
		role, path, err := ParseSpec(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSpec(%q) succeeded, want error", tt.spec)
			}
			continue
		}
		if err != nil || role != tt.wantRole || path != tt.wantPath {
			t.Errorf("ParseSpec(%q) = %v, %q, %v; want %v, %q", tt.spec, role, path, err, tt.wantRole, tt.wantPath)
		}
	}
}

func TestLoadFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomonobold.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	set := NewSet()
	if got := set.Fingerprint(); got != "" {
		t.Errorf("empty set fingerprint = %q", got)
	}
	if err := set.LoadFiles(map[string]string{"script": path, "display": path}); err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	fp := set.Fingerprint()
	if fp == "" {
		t.Fatal("fingerprint empty after overrides")
	}
	if err := set.Override(Script, goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if set.Fingerprint() == fp {
		t.Error("fingerprint unchanged after replacing an override")
	}

	if err := NewSet().LoadFiles(map[string]string{"gothic": path}); err == nil {
		t.Error("expected error for unknown role")
	}
	if err := NewSet().LoadFiles(map[string]string{"script": path + ".missing"}); err == nil {
		t.Error("expected error for missing file")
	}
}
