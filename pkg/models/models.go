package models

import "fmt"

// StaffMember represents a person who can fill a shift slot
type StaffMember struct {
	Name string `json:"name"`
	ID   int    `json:"id"` // ordinal inside the owning group
}

// StaffGroup is an ordered pool of staff that rotate through the same slots
type StaffGroup struct {
	Name    string        `json:"name"`
	Members []StaffMember `json:"members"`
}

// NewStaffGroup creates a group and adds the given names in order
func NewStaffGroup(name string, names ...string) StaffGroup {
	g := StaffGroup{Name: name, Members: make([]StaffMember, 0, len(names))}
	for _, n := range names {
		g.AddStaff(n)
	}
	return g
}

// AddStaff appends a member, giving it the next ordinal ID
func (g *StaffGroup) AddStaff(name string) {
	g.Members = append(g.Members, StaffMember{Name: name, ID: len(g.Members)})
}

// Len returns the number of members in the group
func (g *StaffGroup) Len() int {
	return len(g.Members)
}

// StaffRegistry holds every staff group, indexed by group ID.
// It is built once and must not be mutated while rosters reference it.
type StaffRegistry struct {
	Groups []StaffGroup `json:"groups"`
}

// NewStaffRegistry creates a registry from groups in group-ID order
func NewStaffRegistry(groups ...StaffGroup) *StaffRegistry {
	return &StaffRegistry{Groups: groups}
}

// Group looks up a group by ID
func (r *StaffRegistry) Group(id int) (*StaffGroup, error) {
	if id < 0 || id >= len(r.Groups) {
		return nil, fmt.Errorf("%w: group %d, registry has %d groups", ErrGroupIDOutOfRange, id, len(r.Groups))
	}
	return &r.Groups[id], nil
}

// GroupIndex returns the ID of the group with the given name
func (r *StaffRegistry) GroupIndex(name string) (int, bool) {
	for i, g := range r.Groups {
		if g.Name == name {
			return i, true
		}
	}
	return -1, false
}

// GroupSizes returns the member count of every group
func (r *StaffRegistry) GroupSizes() []int {
	sizes := make([]int, len(r.Groups))
	for i := range r.Groups {
		sizes[i] = r.Groups[i].Len()
	}
	return sizes
}

// Member resolves a decided staff reference through the registry
func (r *StaffRegistry) Member(ref StaffRef) (StaffMember, error) {
	g, err := r.Group(ref.GroupID)
	if err != nil {
		return StaffMember{}, err
	}
	if ref.Index < 0 || ref.Index >= g.Len() {
		return StaffMember{}, fmt.Errorf("%w: index %d in group %d of size %d", ErrStaffIDOutOfRange, ref.Index, ref.GroupID, g.Len())
	}
	return g.Members[ref.Index], nil
}

// StaffRef points at one member of a registry by position
type StaffRef struct {
	GroupID int `json:"group_id"`
	Index   int `json:"index"`
}

func (r StaffRef) String() string {
	return fmt.Sprintf("%d:%d", r.GroupID, r.Index)
}

// Names resolves a list of references to member names
func (r *StaffRegistry) Names(refs []StaffRef) ([]string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		m, err := r.Member(ref)
		if err != nil {
			return nil, err
		}
		names = append(names, m.Name)
	}
	return names, nil
}
