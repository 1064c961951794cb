package ecs

import (
	"reflect"
	"testing"
)

func TestEntitiesLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s Entities
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, s.Create())
			}
			if s.Alive() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, s.Alive())
			}
			if c.destroyIndex >= 0 {
				if !s.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("Destroy should return true for alive entity")
				}
				if s.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if s.Destroy(ents[c.destroyIndex]) {
					t.Fatalf("second Destroy should be a no-op")
				}
			}
		})
	}
}

func TestEntitiesRecycleBumpsGeneration(t *testing.T) {
	var s Entities
	a := s.Create()
	s.Destroy(a)
	b := s.Create()
	if a.id() != b.id() {
		t.Fatalf("expected slot reuse, got %v and %v", a, b)
	}
	if a == b {
		t.Fatalf("recycled handle must differ from the stale one")
	}
	if s.IsAlive(a) {
		t.Fatalf("stale handle reported alive")
	}
}

func TestEntitiesResetInvalidatesHandles(t *testing.T) {
	var s Entities
	a := s.Create()
	b := s.Create()
	s.Reset()
	if s.IsAlive(a) || s.IsAlive(b) {
		t.Fatalf("handles should be dead after reset")
	}
	c := s.Create()
	if c.id() != 1 {
		t.Fatalf("expected lowest slot after reset, got %v", c)
	}
	if c == a {
		t.Fatalf("post-reset handle aliases a stale one")
	}
}

func TestSparseSetOrderAndRemoval(t *testing.T) {
	var ents Entities
	var set SparseSet[string]

	ids := make([]Entity, 0, 4)
	for _, v := range []string{"a", "b", "c", "d"} {
		e := ents.Create()
		ids = append(ids, e)
		set.Set(e, v)
	}

	tests := []struct {
		name   string
		mutate func()
		want   []string
	}{
		{
			name:   "insertion_order",
			mutate: func() {},
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "remove_middle_keeps_order",
			mutate: func() { set.Remove(ids[1]) },
			want:   []string{"a", "c", "d"},
		},
		{
			name: "retain_drops_matching",
			mutate: func() {
				dropped := set.Retain(func(_ Entity, v *string) bool { return *v != "c" })
				if len(dropped) != 1 || dropped[0] != ids[2] {
					t.Fatalf("unexpected dropped list %v", dropped)
				}
			},
			want: []string{"a", "d"},
		},
		{
			name:   "replace_in_place",
			mutate: func() { set.Set(ids[3], "z") },
			want:   []string{"a", "z"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mutate()
			var got []string
			set.Each(func(_ Entity, v *string) { got = append(got, *v) })
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i, e := range set.Entities() {
				v, ok := set.Get(e)
				if !ok || *v != tc.want[i] {
					t.Fatalf("index mismatch at %d: %v ok=%v", i, v, ok)
				}
			}
		})
	}

	if set.Has(ids[1]) {
		t.Fatalf("removed entity still present")
	}
	if cleared := set.Clear(); len(cleared) != 2 || set.Len() != 0 {
		t.Fatalf("clear left %d entries (cleared %v)", set.Len(), cleared)
	}
}

func TestSparseSetRejectsStaleHandle(t *testing.T) {
	var ents Entities
	var set SparseSet[int]
	a := ents.Create()
	set.Set(a, 1)
	set.Remove(a)
	ents.Destroy(a)
	b := ents.Create()
	set.Set(b, 2)
	if _, ok := set.Get(a); ok {
		t.Fatalf("stale handle resolved to recycled slot")
	}
	if v, ok := set.Get(b); !ok || *v != 2 {
		t.Fatalf("expected 2, got %v ok=%v", v, ok)
	}
}

type recordSystem struct {
	name string
}

func (s recordSystem) Update(log *[]string) {
	*log = append(*log, s.name)
}

func TestSchedulerRunsInOrder(t *testing.T) {
	s := NewScheduler[*[]string](recordSystem{"phase"}, recordSystem{"mechanic"}, nil)
	s.Add(recordSystem{"hazard"})
	s.Add(recordSystem{"arena"})

	var got []string
	s.Update(&got)
	want := []string{"phase", "mechanic", "hazard", "arena"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(s.Systems()) != 4 {
		t.Fatalf("nil system should be skipped")
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue[int]
	q.Push(1)
	q.Push(2)
	if q.Len() != 2 {
		t.Fatalf("expected 2 queued, got %d", q.Len())
	}
	if got := q.Drain(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("unexpected drain %v", got)
	}
	if got := q.Drain(); got != nil {
		t.Fatalf("second drain should be empty, got %v", got)
	}
}
