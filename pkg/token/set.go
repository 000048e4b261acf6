package token

import "strings"

// Set is a set of categories. The zero value is the empty set.
type Set uint32

// NewSet returns a set holding the given categories.
func NewSet(categories ...Category) Set {
	var s Set
	for _, c := range categories {
		s = s.Add(c)
	}
	return s
}

// Add returns s with c added.
func (s Set) Add(c Category) Set {
	if c == Invalid || c >= NumCategories {
		return s
	}
	return s | 1<<c
}

// Remove returns s without c.
func (s Set) Remove(c Category) Set {
	return s &^ (1 << c)
}

// Has reports whether c is in the set.
func (s Set) Has(c Category) bool {
	return c < NumCategories && s&(1<<c) != 0
}

// Union returns the categories in s or o.
func (s Set) Union(o Set) Set {
	return s | o
}

// Empty reports whether the set has no categories.
func (s Set) Empty() bool {
	return s == 0
}

// Len returns the number of categories in the set.
func (s Set) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Slice returns the categories in declaration order.
func (s Set) Slice() []Category {
	out := make([]Category, 0, s.Len())
	for c := Connector; c < NumCategories; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the category names in declaration order.
func (s Set) Strings() []string {
	cats := s.Slice()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	return out
}

func (s Set) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}
