package scale

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Mode numbers of the classic modes. Each is the offset into Natural at which
// the mode's step pattern begins.
const (
	Aeolian = iota
	Locrian
	Ionian
	Dorian
	Phrygian
	Lydian
	Mixolydian
)

var modeNames = [Degrees]string{
	Aeolian:    "aeolian",
	Locrian:    "locrian",
	Ionian:     "ionian",
	Dorian:     "dorian",
	Phrygian:   "phrygian",
	Lydian:     "lydian",
	Mixolydian: "mixolydian",
}

// Mode returns the step pattern of a classic mode.
func Mode(mode int) Pattern {
	return Natural.Rotate(mode)
}

// ModeNames lists the classic modes in mode-number order.
func ModeNames() []string {
	return append([]string(nil), modeNames[:]...)
}

// Catalog maps scale names to patterns. A Catalog is not modified after it is
// built and may be shared freely.
type Catalog struct {
	patterns map[string]Pattern
}

// DefaultCatalog holds the seven modes, major and minor, and the harmonic and
// melodic minor scales.
func DefaultCatalog() *Catalog {
	c := &Catalog{patterns: make(map[string]Pattern)}
	for i, name := range modeNames {
		c.patterns[name] = Mode(i)
	}
	c.patterns["major"] = Mode(Ionian)
	c.patterns["minor"] = Mode(Aeolian)
	c.patterns["harmonic-minor"] = Pattern{2, 1, 2, 2, 1, 3, 1}
	c.patterns["melodic-minor"] = Pattern{2, 1, 2, 2, 2, 2, 1}
	return c
}

// Names returns the scale names in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.patterns))
	for name := range c.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a scale by name, ignoring case. A prefix of at least two
// letters selects a classic mode ("io", "DO", "lyd").
func (c *Catalog) Lookup(name string) (Pattern, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := c.patterns[key]; ok {
		return p, nil
	}
	if len(key) >= 2 {
		for _, mode := range modeNames {
			if strings.HasPrefix(mode, key) {
				return c.patterns[mode], nil
			}
		}
	}
	return Pattern{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// With returns a copy of the catalog with extra patterns added or replaced.
func (c *Catalog) With(extra map[string]Pattern) *Catalog {
	out := &Catalog{patterns: make(map[string]Pattern, len(c.patterns)+len(extra))}
	for name, p := range c.patterns {
		out.patterns[name] = p
	}
	for name, p := range extra {
		out.patterns[strings.ToLower(name)] = p
	}
	return out
}

// catalogFile is the TOML layout of a scale preset file:
//
//	[scales.hungarian-minor]
//	steps = [2, 1, 3, 1, 1, 3, 1]
type catalogFile struct {
	Scales map[string]struct {
		Steps []int `toml:"steps"`
	} `toml:"scales"`
}

// LoadCatalog reads scale presets in TOML form and adds them to the default catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scale presets: %w", err)
	}

	extra := make(map[string]Pattern, len(file.Scales))
	for name, s := range file.Scales {
		if len(s.Steps) != Degrees {
			return nil, fmt.Errorf("%w: scale %q has %d steps, want %d", ErrInvalidPattern, name, len(s.Steps), Degrees)
		}
		var p Pattern
		copy(p[:], s.Steps)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("scale %q: %w", name, err)
		}
		extra[name] = p
	}
	return DefaultCatalog().With(extra), nil
}

// LoadCatalogFile reads scale presets from a TOML file.
func LoadCatalogFile(filename string) (*Catalog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scale presets: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalog(f)
}
