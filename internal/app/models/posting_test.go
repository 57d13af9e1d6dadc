package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func loc(roomID int64, floor int, building string) *Location {
	return &Location{RoomID: roomID, Floor: floor, Building: building}
}

func TestScopeAllows(t *testing.T) {
	poster := loc(1, 4, "B3")

	tests := []struct {
		name   string
		scope  Scope
		viewer *Location
		want   bool
	}{
		{"campus visible to anyone", ScopeCampus, loc(99, 1, "A1"), true},
		{"campus visible without location", ScopeCampus, nil, true},
		{"building matches same building", ScopeBuilding, loc(50, 2, "B3"), true},
		{"building rejects other building", ScopeBuilding, loc(50, 4, "A1"), false},
		{"floor needs building and floor", ScopeFloor, loc(2, 4, "B3"), true},
		{"floor rejects same floor other building", ScopeFloor, loc(2, 4, "A1"), false},
		{"floor rejects other floor", ScopeFloor, loc(2, 5, "B3"), false},
		{"room needs exact room", ScopeRoom, loc(1, 4, "B3"), true},
		{"room rejects neighbor", ScopeRoom, loc(2, 4, "B3"), false},
		{"location scope hidden from viewer without location", ScopeBuilding, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeAllows(tt.scope, poster, tt.viewer))
		})
	}
}

func TestScopeAllowsPosterWithoutLocation(t *testing.T) {
	viewer := loc(1, 4, "B3")

	assert.True(t, ScopeAllows(ScopeCampus, nil, viewer))
	for _, s := range []Scope{ScopeBuilding, ScopeFloor, ScopeRoom} {
		assert.False(t, ScopeAllows(s, nil, viewer), "scope %s", s)
	}
}

func TestRangeAllows(t *testing.T) {
	poster := loc(1, 4, "B3")
	viewer := loc(2, 4, "B3")
	otherBuilding := loc(7, 4, "A1")

	assert.True(t, RangeAllows(RangeAll, poster, otherBuilding))
	assert.True(t, RangeAllows(RangeBuilding, poster, viewer))
	assert.False(t, RangeAllows(RangeBuilding, poster, otherBuilding))
	assert.True(t, RangeAllows(RangeFloor, poster, viewer))
	assert.False(t, RangeAllows(RangeFloor, poster, loc(9, 5, "B3")))
	assert.False(t, RangeAllows(RangeRoom, poster, viewer))
	assert.True(t, RangeAllows(RangeRoom, poster, loc(1, 4, "B3")))

	// Unknown filter values never narrow
	assert.True(t, RangeAllows(RangeFilter("NEARBY"), poster, otherBuilding))
}

// Applying a range filter can only shrink the visible set: whenever a
// posting passes scope AND range, it must also pass scope alone.
func TestRangeFilterOnlyNarrows(t *testing.T) {
	locations := []*Location{
		nil,
		loc(1, 4, "B3"), loc(2, 4, "B3"), loc(3, 5, "B3"), loc(4, 4, "A1"),
	}
	scopes := []Scope{ScopeRoom, ScopeFloor, ScopeBuilding, ScopeCampus}
	filters := []RangeFilter{RangeAll, RangeBuilding, RangeFloor, RangeRoom}

	for _, scope := range scopes {
		for _, f := range filters {
			for _, p := range locations {
				for _, v := range locations {
					visible := ScopeAllows(scope, p, v)
					filtered := visible && RangeAllows(f, p, v)
					if filtered && !visible {
						t.Fatalf("filter widened visibility: scope=%s filter=%s", scope, f)
					}
					if f == RangeAll {
						assert.Equal(t, visible, filtered,
							"empty filter must not narrow: scope=%s", scope)
					}
				}
			}
		}
	}
}

func TestScopeValid(t *testing.T) {
	for _, s := range []Scope{ScopeRoom, ScopeFloor, ScopeBuilding, ScopeCampus} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Scope("GALAXY").Valid())
	assert.False(t, Scope("").Valid())
}
