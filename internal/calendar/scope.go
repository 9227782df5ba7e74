package calendar

// Scope is the declarative visibility descriptor resolved from the caller's
// role before any store is queried. It is either unrestricted (staff) or an
// explicit set of permitted class ids (students, from active enrollments).
type Scope struct {
	Unrestricted bool
	ClassIDs     []int
}

// UnrestrictedScope is the scope for admin and teacher callers.
func UnrestrictedScope() Scope {
	return Scope{Unrestricted: true}
}

// StudentScope builds a scope from a student's active enrollment class ids.
// An empty set is valid: such a student sees only globally scoped events
// (class id NULL) and no rule occurrences at all.
func StudentScope(classIDs []int) Scope {
	return Scope{ClassIDs: classIDs}
}

// HasClasses reports whether the scope names at least one class.
func (s Scope) HasClasses() bool {
	return s.Unrestricted || len(s.ClassIDs) > 0
}

// AllowsEvent reports whether an event with the given class scope is visible.
// A nil class id means the event is global (e.g. a holiday) and is always
// visible. The SQL scope filters mirror this predicate.
func (s Scope) AllowsEvent(classID *int) bool {
	if s.Unrestricted || classID == nil {
		return true
	}
	for _, id := range s.ClassIDs {
		if id == *classID {
			return true
		}
	}
	return false
}

// AllowsRule reports whether a rule bound to the given class is visible.
// Rules are never global: without a matching class there is no occurrence.
func (s Scope) AllowsRule(classID int) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.ClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}
