package bookshelf

import (
	"testing"
)

func TestSummarizeVariantScenario(t *testing.T) {
	h := newHome(t, map[string]*Item{
		"s/plain": card("Lightning Bolt", "m10-146", Plain, 10),
		"s/foil":  card("Lightning Bolt", "m10-146", Foil, 15),
	})

	testCases := []struct {
		name  string
		group GroupOptions
		rows  int
		count int
	}{
		{"variant", GroupOptions{}, 2, 1},
		{"reprints", GroupOptions{Key: FamilyIdentity.Of}, 1, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := &Walker{Home: h, Depth: 0, SortBy: ByName}
			l, err := Summarize(w.Walk("s"), SummaryOptions{Group: tc.group})
			if err != nil {
				t.Fatalf("Summarize() error: %v", err)
			}
			s := l.Shelves[0]
			if len(s.Rows) != tc.rows {
				t.Fatalf("got %d rows, want %d", len(s.Rows), tc.rows)
			}
			for _, r := range s.Rows {
				if r.Count() != tc.count {
					t.Errorf("row %q count = %d, want %d", r.Path, r.Count(), tc.count)
				}
			}
			if !s.Total.Value().Equal(dec(25)) {
				t.Errorf("shelf total = %v, want 25.00", s.Total)
			}
			if s.Grand != nil || l.Grand != nil {
				t.Errorf("non recursive summary has a grand total")
			}
		})
	}
}

func TestSummarizeGrandTotal(t *testing.T) {
	h := newHome(t, map[string]*Item{
		"root/a/x":   card("X", "x", Plain, 2),
		"root/a/y":   card("Y", "y", Plain, 3),
		"root/b/z":   card("Z", "z", Plain, 7.5),
		"root/a/c/w": card("W", "w", Plain, 1),
	})

	w := NewWalker(h)
	l, err := Summarize(w.Walk("root"), SummaryOptions{Recursive: true})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if l.Grand == nil || !l.Grand.Value().Equal(dec(13.5)) {
		t.Errorf("grand total = %v, want 13.50", l.Grand)
	}

	want := map[string]float64{"root": 13.5, "root/a": 6, "root/a/c": 1, "root/b": 7.5}
	for _, s := range l.Shelves {
		if s.Grand == nil || !s.Grand.Value().Equal(dec(want[s.Path])) {
			t.Errorf("shelf %q grand = %v, want %v", s.Path, s.Grand, want[s.Path])
		}
	}
	if !l.Shelves[0].Total.IsZero() {
		t.Errorf("root own total = %v, want 0", l.Shelves[0].Total)
	}
}

func TestSummarizeTwoSubShelves(t *testing.T) {
	h := newHome(t, map[string]*Item{
		"one/a": card("A", "a", Plain, 2.5),
		"one/b": card("B", "b", Plain, 2.5),
		"two/c": card("C", "c", Plain, 7.5),
	})
	l, err := Summarize(NewWalker(h).Walk(""), SummaryOptions{Recursive: true})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got := l.Grand.Value(); !got.Equal(dec(12.5)) {
		t.Errorf("grand total = %v, want 12.50", got)
	}
}

func TestSummarizeTotalIsSumOfLatest(t *testing.T) {
	h := newHome(t, map[string]*Item{
		"s/a": card("A", "a", Plain, 1, 2, 3.25),
		"s/b": card("B", "b", Foil, 10, 0.5),
		"s/c": card("C", "c", Etched, 4),
		"s/d": card("D", "d", Plain), // legacy item without price.
	})
	l, err := Summarize((&Walker{Home: h}).Walk("s"), SummaryOptions{})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got := l.Shelves[0].Total.Value(); !got.Equal(dec(7.75)) {
		t.Errorf("shelf total = %v, want 7.75", got)
	}
	if l.Count != 4 {
		t.Errorf("count = %d, want 4", l.Count)
	}

	// filtered items do not contribute.
	w := &Walker{Home: h, Filters: []Filter{FinishIs(Plain)}}
	l, err = Summarize(w.Walk("s"), SummaryOptions{})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if got := l.Shelves[0].Total.Value(); !got.Equal(dec(3.25)) {
		t.Errorf("filtered shelf total = %v, want 3.25", got)
	}
}

func TestSummarizeError(t *testing.T) {
	h := newHome(t, nil)
	if _, err := Summarize(NewWalker(h).Walk("missing"), SummaryOptions{}); err == nil {
		t.Error("Summarize() of a missing shelf expected an error")
	}
}
