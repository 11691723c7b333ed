package board

import "testing"

func TestViewNetFilter(t *testing.T) {
	b := parseFixture(t)
	v := NewView(b, ViewOptions{NetCodes: []int{1}})

	tracks := v.Tracks("F.Cu")
	if len(tracks) != 2 {
		t.Errorf("GND tracks on F.Cu = %d, want 2", len(tracks))
	}
	if got := len(v.Tracks("B.Cu")); got != 0 {
		t.Errorf("GND tracks on B.Cu = %d, want 0", got)
	}
	if got := len(v.Vias("B.Cu")); got != 1 {
		t.Errorf("GND vias on B.Cu = %d, want 1 (through via)", got)
	}
	if got := len(v.Pads("F.Cu")); got != 0 {
		t.Errorf("GND pads = %d, want 0", got)
	}
	if got := len(v.ZoneFills("B.Cu")); got != 1 {
		t.Errorf("GND zone fills = %d, want 1", got)
	}
}

func TestViewDoesNotMutateBoard(t *testing.T) {
	b := parseFixture(t)
	before := len(b.Tracks)
	_ = NewView(b, ViewOptions{NetCodes: []int{2}, SkipZones: true}).Tracks("F.Cu")
	if len(b.Tracks) != before {
		t.Fatal("view mutated the board")
	}
}

func TestViewSkipZones(t *testing.T) {
	b := parseFixture(t)
	v := NewView(b, ViewOptions{NetCodes: []int{1}, SkipZones: true})
	if got := len(v.ZoneFills("B.Cu")); got != 0 {
		t.Errorf("zone fills with skipZones = %d, want 0", got)
	}
}

func TestViewOutlineUnfiltered(t *testing.T) {
	b := parseFixture(t)
	v := NewView(b, ViewOptions{NetCodes: []int{3}})
	if got := len(v.Graphics(EdgeCuts)); got != 4 {
		t.Errorf("outline graphics = %d, want 4 regardless of net filter", got)
	}
}

func TestHasContent(t *testing.T) {
	b := parseFixture(t)
	tests := []struct {
		name  string
		nets  []int
		layer string
		want  bool
	}{
		{"GND on F.Cu", []int{1}, "F.Cu", true},
		{"SIGNAL1 on F.Cu (pad only)", []int{3}, "F.Cu", true},
		{"SIGNAL1 on B.Cu", []int{3}, "B.Cu", true},
		{"VCC on B.Cu", []int{2}, "B.Cu", false},
		{"outline layer", nil, "Edge.Cuts", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(b, ViewOptions{NetCodes: tt.nets})
			if got := v.HasContent(tt.layer); got != tt.want {
				t.Errorf("HasContent(%s) = %v, want %v", tt.layer, got, tt.want)
			}
		})
	}
}

func TestNetsOnLayer(t *testing.T) {
	b := parseFixture(t)
	v := NewView(b, ViewOptions{})
	got := v.NetsOnLayer("B.Cu")
	// GND (via + zone) and SIGNAL1 (track)
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("nets on B.Cu = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("nets on B.Cu = %v, want %v", got, want)
		}
	}
}
