package nereval

import "sort"

// Type is the label carried by an entity's type attribute.
type Type int

// Entity types. TypeUnknown marks an attribute value outside the closed set;
// such entities are extracted but never counted.
const (
	TypeUnknown Type = iota
	Person
	Organization
	Location
	Miscellaneous

	numTypes
)

// StandardTypes are the types reported by default and summed into the overall row.
var StandardTypes = []Type{Person, Organization, Location}

// AllTypes lists every known type, including Miscellaneous.
var AllTypes = []Type{Person, Organization, Location, Miscellaneous}

var typeNames = [numTypes]string{
	TypeUnknown:   "",
	Person:        "PERSON",
	Organization:  "ORGANIZATION",
	Location:      "LOCATION",
	Miscellaneous: "MISCELLANEOUS",
}

func (t Type) String() string {
	if t < 0 || t >= numTypes {
		return ""
	}
	return typeNames[t]
}

// ParseType maps an attribute value to a Type. Matching is exact and
// case-sensitive; anything else yields TypeUnknown.
func ParseType(s string) Type {
	for t := Person; t < numTypes; t++ {
		if typeNames[t] == s {
			return t
		}
	}
	return TypeUnknown
}

// Kind records which extraction pass recovered an entity.
type Kind int

const (
	KindFlat         Kind = iota + 1 // no nested tags
	KindNested                       // one nested layer
	KindDoubleNested                 // two nested layers
)

// MaxHeight is the deepest region (counted in tag layers) that is extracted.
const MaxHeight = int(KindDoubleNested)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindNested:
		return "nested"
	case KindDoubleNested:
		return "double-nested"
	default:
		return "unknown"
	}
}

// Key identifies an entity inside one document: a half-open span of the
// plain text plus its type.
type Key struct {
	Start int
	End   int
	Type  Type
}

// Entity is one extracted annotation.
type Entity struct {
	Key
	Surface string
	Kind    Kind
	Level   int // 1 for a region not enclosed by any other
}

// EntitySet holds the entities of one document under one markup source.
// Keys are unique; the first entity added under a key wins.
type EntitySet struct {
	entities []Entity
	index    map[Key]int
}

// NewEntitySet returns an empty set.
func NewEntitySet() *EntitySet {
	return &EntitySet{index: make(map[Key]int)}
}

// Add inserts e unless an entity with the same key is present.
// It reports whether e was inserted.
func (s *EntitySet) Add(e Entity) bool {
	if _, ok := s.index[e.Key]; ok {
		return false
	}
	s.index[e.Key] = len(s.entities)
	s.entities = append(s.entities, e)
	return true
}

// Get returns the entity stored under k.
func (s *EntitySet) Get(k Key) (Entity, bool) {
	i, ok := s.index[k]
	if !ok {
		return Entity{}, false
	}
	return s.entities[i], true
}

// Len returns the number of entities.
func (s *EntitySet) Len() int {
	return len(s.entities)
}

// Count returns how many entities carry type t.
func (s *EntitySet) Count(t Type) int {
	n := 0
	for _, e := range s.entities {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Entities returns a copy of the entities in set order.
func (s *EntitySet) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// sortByOffset orders entities by start offset, wider spans first.
// The sort is stable so ties keep pass order.
func (s *EntitySet) sortByOffset() {
	sort.SliceStable(s.entities, func(i, j int) bool {
		a, b := s.entities[i], s.entities[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End > b.End
	})
	for i, e := range s.entities {
		s.index[e.Key] = i
	}
}
