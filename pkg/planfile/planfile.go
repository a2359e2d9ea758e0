// Package planfile reads and writes rotation plans authored as TOML, YAML or
// JSON documents.
//
// Slots are written as a group name followed by the local id, e.g. "A0" or
// "nurses12". Group names match case-insensitively.
package planfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arnavshah/rotation-api-go/pkg/models"
	"github.com/arnavshah/rotation-api-go/pkg/rules"
)

var (
	// ErrUnsupportedFormat indicates a file extension or format name we cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported plan format")

	// ErrBadSlot indicates a slot token that is not <group><id>.
	ErrBadSlot = errors.New("malformed slot")

	// ErrUnknownGroup indicates a slot token naming a group that is not declared.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrBadGroupName indicates a group name that slot tokens cannot refer to:
	// empty, or ending in a digit.
	ErrBadGroupName = errors.New("group name must be non-empty and must not end in a digit")

	// ErrDuplicateGroup indicates two groups with the same name.
	ErrDuplicateGroup = errors.New("duplicate group name")

	// ErrNoWeeks indicates a plan without any week.
	ErrNoWeeks = errors.New("plan has no weeks")
)

// Format is a plan document encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// File is the authored form of a rotation plan
type File struct {
	Groups []Group        `json:"groups" yaml:"groups" toml:"groups"`
	Weeks  []Week         `json:"weeks" yaml:"weeks" toml:"weeks"`
	Checks *rules.Options `json:"checks,omitempty" yaml:"checks,omitempty" toml:"checks,omitempty"`
}

// Group is a named staff pool
type Group struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Staff []string `json:"staff" yaml:"staff" toml:"staff"`
}

// Week maps weekday names ("mon".."sun") to that day's slots
type Week map[string]Day

// Day lists slot tokens per half day
type Day struct {
	Morning   []string `json:"morning,omitempty" yaml:"morning,omitempty" toml:"morning,omitempty"`
	Afternoon []string `json:"afternoon,omitempty" yaml:"afternoon,omitempty" toml:"afternoon,omitempty"`
}

// Load reads a plan file, choosing the decoder by extension
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a plan document
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &f, nil
}

// Encode writes the plan document in the given format
func (f *File) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Bytes is Encode into a buffer
func (f *File) Bytes(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Registry builds the staff registry in declaration order
func (f *File) Registry() (*models.StaffRegistry, error) {
	seen := make(map[string]bool, len(f.Groups))
	groups := make([]models.StaffGroup, 0, len(f.Groups))
	for _, g := range f.Groups {
		if g.Name == "" || isDigit(g.Name[len(g.Name)-1]) {
			return nil, fmt.Errorf("%w: %q", ErrBadGroupName, g.Name)
		}
		key := strings.ToLower(g.Name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGroup, g.Name)
		}
		seen[key] = true
		groups = append(groups, models.NewStaffGroup(g.Name, g.Staff...))
	}
	return models.NewStaffRegistry(groups...), nil
}

// Plan builds the registry and template cycle described by the file
func (f *File) Plan() (models.RotationPlan, error) {
	reg, err := f.Registry()
	if err != nil {
		return models.RotationPlan{}, err
	}
	if len(f.Weeks) == 0 {
		return models.RotationPlan{}, ErrNoWeeks
	}

	cycle := make(models.TemplateCycle, len(f.Weeks))
	for w, week := range f.Weeks {
		for d := range cycle[w].Days {
			cycle[w].Days[d] = models.DayTemplate{Morning: []models.ShiftSlot{}, Afternoon: []models.ShiftSlot{}}
		}
		for name, day := range week {
			wd, err := models.ParseWeekday(name)
			if err != nil {
				return models.RotationPlan{}, fmt.Errorf("week %d: %w", w, err)
			}
			if cycle[w].Days[wd].Morning, err = parseSlots(reg, day.Morning); err != nil {
				return models.RotationPlan{}, fmt.Errorf("week %d %s morning: %w", w, wd, err)
			}
			if cycle[w].Days[wd].Afternoon, err = parseSlots(reg, day.Afternoon); err != nil {
				return models.RotationPlan{}, fmt.Errorf("week %d %s afternoon: %w", w, wd, err)
			}
		}
	}
	return models.RotationPlan{Registry: reg, Cycle: cycle}, nil
}

func parseSlots(reg *models.StaffRegistry, tokens []string) ([]models.ShiftSlot, error) {
	out := make([]models.ShiftSlot, 0, len(tokens))
	for _, tok := range tokens {
		s, err := ParseSlot(reg, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseSlot resolves a "<group><id>" token against the registry's group names
func ParseSlot(reg *models.StaffRegistry, tok string) (models.ShiftSlot, error) {
	tok = strings.TrimSpace(tok)
	i := len(tok)
	for i > 0 && isDigit(tok[i-1]) {
		i--
	}
	if i == 0 || i == len(tok) {
		return models.ShiftSlot{}, fmt.Errorf("%w: %q", ErrBadSlot, tok)
	}
	id, err := strconv.Atoi(tok[i:])
	if err != nil {
		return models.ShiftSlot{}, fmt.Errorf("%w: %q: %v", ErrBadSlot, tok, err)
	}
	name := tok[:i]
	for g := range reg.Groups {
		if strings.EqualFold(reg.Groups[g].Name, name) {
			return models.ShiftSlot{GroupID: g, LocalID: id}, nil
		}
	}
	return models.ShiftSlot{}, fmt.Errorf("%w: %q in slot %q", ErrUnknownGroup, name, tok)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// FromPlan renders a plan back into its authored form. Slots whose group id
// has no registry entry are written as "#<group>:<id>" and will not parse.
// Group names ending in a digit are written as is; Plan rejects them with
// ErrBadGroupName.
func FromPlan(plan models.RotationPlan) *File {
	f := &File{}
	for _, g := range plan.Registry.Groups {
		staff := make([]string, len(g.Members))
		for i, m := range g.Members {
			staff[i] = m.Name
		}
		f.Groups = append(f.Groups, Group{Name: g.Name, Staff: staff})
	}
	token := func(s models.ShiftSlot) string {
		if s.GroupID < 0 || s.GroupID >= len(plan.Registry.Groups) {
			return fmt.Sprintf("#%d:%d", s.GroupID, s.LocalID)
		}
		return plan.Registry.Groups[s.GroupID].Name + strconv.Itoa(s.LocalID)
	}
	for _, wt := range plan.Cycle {
		week := Week{}
		for d, day := range wt.Days {
			if len(day.Morning) == 0 && len(day.Afternoon) == 0 {
				continue
			}
			var out Day
			for _, s := range day.Morning {
				out.Morning = append(out.Morning, token(s))
			}
			for _, s := range day.Afternoon {
				out.Afternoon = append(out.Afternoon, token(s))
			}
			week[models.Weekday(d).String()] = out
		}
		f.Weeks = append(f.Weeks, week)
	}
	return f
}
