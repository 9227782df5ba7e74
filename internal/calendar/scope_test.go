package calendar

import "testing"

func intPtr(v int) *int { return &v }

func TestUnrestrictedScopeSeesEverything(t *testing.T) {
	s := UnrestrictedScope()
	if !s.AllowsEvent(nil) || !s.AllowsEvent(intPtr(42)) {
		t.Error("unrestricted scope must allow every event")
	}
	if !s.AllowsRule(42) {
		t.Error("unrestricted scope must allow every rule")
	}
	if !s.HasClasses() {
		t.Error("unrestricted scope reports HasClasses")
	}
}

func TestStudentScopeFiltersByClass(t *testing.T) {
	s := StudentScope([]int{3, 7})

	if !s.AllowsEvent(intPtr(3)) || !s.AllowsEvent(intPtr(7)) {
		t.Error("enrolled classes must be visible")
	}
	if s.AllowsEvent(intPtr(9)) {
		t.Error("foreign class event must be hidden")
	}
	if !s.AllowsEvent(nil) {
		t.Error("global events must be visible to every student")
	}

	if !s.AllowsRule(3) {
		t.Error("enrolled class rule must be visible")
	}
	if s.AllowsRule(9) {
		t.Error("foreign class rule must be hidden")
	}
}

func TestEmptyStudentScope(t *testing.T) {
	s := StudentScope(nil)
	if s.HasClasses() {
		t.Error("empty enrollment set reports HasClasses")
	}
	if !s.AllowsEvent(nil) {
		t.Error("global events stay visible with no enrollments")
	}
	if s.AllowsEvent(intPtr(1)) || s.AllowsRule(1) {
		t.Error("class scoped items must be hidden with no enrollments")
	}
}
