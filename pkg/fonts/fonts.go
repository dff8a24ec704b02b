// Package fonts provides the typefaces used for frame captions.
//
// The default faces come from the Go font family embedded in
// golang.org/x/image, so rendering works without any system fonts. The Go
// family has no serif or script cut: the Display and Italic roles fall back
// to Go Bold and Go Italic (sans), and Script to Go Medium Italic. Frames
// that should carry a serif camera line or a handwritten signature need an
// override for those roles, set from the [fonts] settings table, the
// FILMFRAME_FONTS variable or a repeated --font role=path flag:
//
//	set := fonts.NewSet()
//	if err := set.LoadFile(fonts.Script, "GreatVibes.ttf"); err != nil {
//	    return err
//	}
//	face, err := set.Face(fonts.Script, 32)
package fonts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Role identifies what a typeface is used for.
type Role int

const (
	// Display is the bold face used for gallery camera names.
	Display Role = iota
	// Italic is used for the instant-film camera line.
	Italic
	// Sans is used for secondary caption lines and dates.
	Sans
	// Script is used for signatures.
	Script
	// Mono is used for the quartz date stamp.
	Mono
	// Wide is used for the letter-spaced cinema caption.
	Wide
)

var roleNames = map[Role]string{
	Display: "display",
	Italic:  "italic",
	Sans:    "sans",
	Script:  "script",
	Mono:    "mono",
	Wide:    "wide",
}

func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a role name back to its Role.
func ParseRole(s string) (Role, error) {
	for r, n := range roleNames {
		if n == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown font role: %q", s)
}

// ParseSpec splits a "role=path" override into its role and path.
func ParseSpec(spec string) (Role, string, error) {
	name, path, ok := strings.Cut(spec, "=")
	if !ok || strings.TrimSpace(path) == "" {
		return 0, "", fmt.Errorf("font override %q: want role=path", spec)
	}
	role, err := ParseRole(strings.TrimSpace(name))
	if err != nil {
		return 0, "", err
	}
	return role, strings.TrimSpace(path), nil
}

var builtinTTF = map[Role][]byte{
	Display: gobold.TTF,
	Italic:  goitalic.TTF,
	Sans:    goregular.TTF,
	Script:  gomediumitalic.TTF,
	Mono:    gomonobold.TTF,
	Wide:    gomedium.TTF,
}

// Parsed builtin fonts (computed once on first access).
var (
	builtin     map[Role]*truetype.Font
	builtinErr  error
	builtinOnce sync.Once
)

func builtinFonts() (map[Role]*truetype.Font, error) {
	builtinOnce.Do(func() {
		builtin = make(map[Role]*truetype.Font, len(builtinTTF))
		for r, data := range builtinTTF {
			f, err := truetype.Parse(data)
			if err != nil {
				builtinErr = fmt.Errorf("parse builtin %s font: %w", r, err)
				return
			}
			builtin[r] = f
		}
	})
	return builtin, builtinErr
}

// Set resolves faces by role, preferring overrides over the builtin fonts.
// A Set is safe for concurrent use.
type Set struct {
	mu        sync.RWMutex
	overrides map[Role]*truetype.Font
	sums      map[Role]string
}

// NewSet returns a set with no overrides.
func NewSet() *Set {
	return &Set{
		overrides: make(map[Role]*truetype.Font),
		sums:      make(map[Role]string),
	}
}

// Override parses ttf and uses it for role.
func (s *Set) Override(role Role, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse %s font: %w", role, err)
	}
	sum := sha256.Sum256(ttf)
	s.mu.Lock()
	s.overrides[role] = f
	s.sums[role] = hex.EncodeToString(sum[:8])
	s.mu.Unlock()
	return nil
}

// LoadFile reads a TrueType file from disk and uses it for role.
func (s *Set) LoadFile(role Role, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return s.Override(role, data)
}

// LoadFiles applies overrides given as role name to TrueType path.
func (s *Set) LoadFiles(paths map[string]string) error {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		role, err := ParseRole(name)
		if err != nil {
			return err
		}
		if err := s.LoadFile(role, paths[name]); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint identifies the overrides in the set. It is empty when the
// set only uses builtin fonts.
func (s *Set) Fingerprint() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	parts := make([]string, 0, len(s.sums))
	for role, sum := range s.sums {
		parts = append(parts, role.String()+"="+sum)
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

// Face returns a face for role at the given pixel size.
func (s *Set) Face(role Role, size float64) (font.Face, error) {
	f, err := s.font(role)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}), nil
}

func (s *Set) font(role Role) (*truetype.Font, error) {
	if s != nil {
		s.mu.RLock()
		f, ok := s.overrides[role]
		s.mu.RUnlock()
		if ok {
			return f, nil
		}
	}
	fonts, err := builtinFonts()
	if err != nil {
		return nil, err
	}
	f, ok := fonts[role]
	if !ok {
		return nil, fmt.Errorf("no font for role %s", role)
	}
	return f, nil
}

// Face returns a builtin face for role at the given pixel size.
func Face(role Role, size float64) (font.Face, error) {
	return (*Set)(nil).Face(role, size)
}
