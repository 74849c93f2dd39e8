// SPDX-License-Identifier: MIT
package table

// Schema lists a table's columns by role (spec §6). Column order is
// significant inside a role but roles themselves are unordered.
type Schema struct {
	Categoricals []string
	JoinKeys     []string
	Numericals   []string
	Discretes    []string
	TimeStamps   []string
	Targets      []string
	Text         []string
	Unused       []string

	// Units records the semantic unit tag per column name, for round-trip
	// fidelity (spec §8 property 8: "roundtrip preserves every column role
	// and unit").
	Units map[string]string
}

// SchemaOf derives a Schema by walking t's columns and grouping them by role.
func SchemaOf(t *Table) *Schema {
	s := &Schema{Units: make(map[string]string, len(t.order))}
	for _, name := range t.order {
		c := t.columns[name]
		s.Units[name] = c.Unit
		switch c.Role {
		case RoleCategorical:
			s.Categoricals = append(s.Categoricals, name)
		case RoleJoinKey:
			s.JoinKeys = append(s.JoinKeys, name)
		case RoleNumerical:
			s.Numericals = append(s.Numericals, name)
		case RoleDiscrete:
			s.Discretes = append(s.Discretes, name)
		case RoleTimeStamp:
			s.TimeStamps = append(s.TimeStamps, name)
		case RoleTarget:
			s.Targets = append(s.Targets, name)
		case RoleText:
			s.Text = append(s.Text, name)
		case RoleUnused:
			s.Unused = append(s.Unused, name)
		}
	}

	return s
}

// allColumns returns every column name the schema names, role-major order,
// used by roleMap and by Validate's membership checks.
func (s *Schema) allColumns() []string {
	out := make([]string, 0, len(s.Categoricals)+len(s.JoinKeys)+len(s.Numericals)+
		len(s.Discretes)+len(s.TimeStamps)+len(s.Targets)+len(s.Text)+len(s.Unused))
	out = append(out, s.Categoricals...)
	out = append(out, s.JoinKeys...)
	out = append(out, s.Numericals...)
	out = append(out, s.Discretes...)
	out = append(out, s.TimeStamps...)
	out = append(out, s.Targets...)
	out = append(out, s.Text...)
	out = append(out, s.Unused...)

	return out
}

// Equal reports whether s and other name the same columns under the same
// roles with the same units (spec §8 property 8: "feature_learner.to_schema().
// roundtrip() preserves every column role and unit"). Callers establish the
// round-trip property by asserting SchemaOf(rebuiltTable).Equal(original).
func (s *Schema) Equal(other *Schema) bool {
	if len(s.Units) != len(other.Units) {
		return false
	}
	for name, unit := range s.Units {
		if other.Units[name] != unit {
			return false
		}
	}

	a, b := roleMap(s), roleMap(other)
	if len(a) != len(b) {
		return false
	}
	for name, role := range a {
		if b[name] != role {
			return false
		}
	}

	return true
}

func roleMap(s *Schema) map[string]Role {
	m := make(map[string]Role, len(s.allColumns()))
	for _, n := range s.Categoricals {
		m[n] = RoleCategorical
	}
	for _, n := range s.JoinKeys {
		m[n] = RoleJoinKey
	}
	for _, n := range s.Numericals {
		m[n] = RoleNumerical
	}
	for _, n := range s.Discretes {
		m[n] = RoleDiscrete
	}
	for _, n := range s.TimeStamps {
		m[n] = RoleTimeStamp
	}
	for _, n := range s.Targets {
		m[n] = RoleTarget
	}
	for _, n := range s.Text {
		m[n] = RoleText
	}
	for _, n := range s.Unused {
		m[n] = RoleUnused
	}

	return m
}

// Validate checks t against s: every non-target column s names must be
// present in t (else *MissingColumnError), and extra columns in t that s
// does not name are ignored (spec §6: "extra columns are ignored").
func (s *Schema) Validate(t *Table) error {
	required := s.allColumns()
	targets := make(map[string]bool, len(s.Targets))
	for _, n := range s.Targets {
		targets[n] = true
	}

	for _, name := range required {
		if targets[name] {
			continue // targets are only required at fit time, not transform
		}
		if !t.HasColumn(name) {
			return &MissingColumnError{Name: name}
		}
	}

	return nil
}
