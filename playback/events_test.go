package playback

import "testing"

func TestRegistryDispatchOrder(t *testing.T) {
	var r Registry
	var order []string
	r.Add("hit", func() { order = append(order, "cb1") })
	r.Add("hit", func() { order = append(order, "cb2") })
	r.Add("other", func() { order = append(order, "other") })

	r.Dispatch("hit")
	if len(order) != 2 || order[0] != "cb1" || order[1] != "cb2" {
		t.Fatalf("expected registration order [cb1 cb2], got %v", order)
	}
}

func TestRegistryRemove(t *testing.T) {
	cases := []struct {
		name   string
		remove func(r *Registry, h1, h2 Handle)
		want   []string
	}{
		{
			"removes_first",
			func(r *Registry, h1, _ Handle) { r.Remove("hit", h1) },
			[]string{"cb2"},
		},
		{
			"removes_second",
			func(r *Registry, _, h2 Handle) { r.Remove("hit", h2) },
			[]string{"cb1"},
		},
		{
			"unknown_handle_is_noop",
			func(r *Registry, _, _ Handle) { r.Remove("hit", Handle(9999)) },
			[]string{"cb1", "cb2"},
		},
		{
			"unknown_name_is_noop",
			func(r *Registry, h1, _ Handle) { r.Remove("miss", h1) },
			[]string{"cb1", "cb2"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r Registry
			var got []string
			h1 := r.Add("hit", func() { got = append(got, "cb1") })
			h2 := r.Add("hit", func() { got = append(got, "cb2") })

			c.remove(&r, h1, h2)
			r.Dispatch("hit")

			if len(got) != len(c.want) {
				t.Fatalf("dispatched %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("dispatched %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestRegistryNilAndEmpty(t *testing.T) {
	var r Registry
	if h := r.Add("hit", nil); h != -1 {
		t.Fatalf("nil callback should not register, got handle %v", h)
	}
	r.Dispatch("hit") // no listeners, no panic
	if r.Len("hit") != 0 {
		t.Fatalf("expected empty registry")
	}
}
