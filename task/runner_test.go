package task

import "testing"

func TestDelayStep(t *testing.T) {
	cases := []struct {
		name    string
		seconds float64
		ticks   []float64
		done    []bool
	}{
		{"zero_completes_immediately", 0, []float64{0}, []bool{true}},
		{"negative_completes_immediately", -1, []float64{0}, []bool{true}},
		{"counts_down", 0.5, []float64{0.2, 0.2, 0.2}, []bool{false, false, true}},
		{"exact_boundary", 0.4, []float64{0.2, 0.2}, []bool{false, true}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := Delay(c.seconds)
			for i, dt := range c.ticks {
				if got := s.Tick(dt); got != c.done[i] {
					t.Fatalf("tick %d: done = %v, want %v", i, got, c.done[i])
				}
			}
		})
	}
}

func TestWaitForStep(t *testing.T) {
	t.Run("completes_when_cond_true", func(t *testing.T) {
		flag := false
		s := WaitFor(func() bool { return flag }, 10, nil)
		if s.Tick(1) {
			t.Fatalf("wait should not complete while cond is false")
		}
		flag = true
		if !s.Tick(0) {
			t.Fatalf("wait should complete once cond is true")
		}
	})

	t.Run("times_out", func(t *testing.T) {
		timedOut := false
		s := WaitFor(func() bool { return false }, 2, func() { timedOut = true })
		if s.Tick(1) {
			t.Fatalf("should still be waiting at 1s")
		}
		if !s.Tick(1) {
			t.Fatalf("should complete at the 2s timeout")
		}
		if !timedOut {
			t.Fatalf("onTimeout should have fired")
		}
	})

	t.Run("cond_wins_over_timeout", func(t *testing.T) {
		timedOut := false
		s := WaitFor(func() bool { return true }, 2, func() { timedOut = true })
		if !s.Tick(100) {
			t.Fatalf("should complete via cond")
		}
		if timedOut {
			t.Fatalf("onTimeout should not fire when cond completes the wait")
		}
	})
}

func TestRunnerChainsWithinFrame(t *testing.T) {
	r := NewRunner()
	var order []string
	r.Spawn("owner",
		Do(func() { order = append(order, "a") }),
		Do(func() { order = append(order, "b") }),
		Delay(0.5),
		Do(func() { order = append(order, "c") }),
	)

	r.Update(0.1)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("untimed steps should chain in one frame, got %v", order)
	}
	// Delay starts counting on the frame after the chain reached it.
	r.Update(0.3)
	r.Update(0.3)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("delayed step should run after the delay, got %v", order)
	}
	if r.Len() != 0 {
		t.Fatalf("finished task should be dropped, %d remain", r.Len())
	}
}

func TestRunnerLoopYieldsEachIteration(t *testing.T) {
	r := NewRunner()
	count := 0
	r.SpawnLoop("owner", func() []Step {
		return []Step{Do(func() { count++ })}
	})

	for i := 0; i < 5; i++ {
		r.Update(0.1)
	}
	if count != 5 {
		t.Fatalf("instant loop body should run once per frame, ran %d in 5 frames", count)
	}
	if r.Len() != 1 {
		t.Fatalf("loop should never finish on its own")
	}
}

func TestRunnerCancelOwner(t *testing.T) {
	cases := []struct {
		name      string
		cancel    any
		wantRuns  int
		wantTasks int
	}{
		// Canceling "a" leaves only the endless "b" loop. Canceling "b"
		// lets "a" run to completion (it finishes by the third update, one
		// delay per frame with the Do chained in), leaving nothing.
		{"cancels_matching_owner", "a", 0, 1},
		{"keeps_other_owners", "b", 3, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRunner()
			runs := 0
			r.Spawn("a", Delay(0.1), Do(func() { runs++ }), Delay(0.1), Do(func() { runs++ }), Delay(0.1), Do(func() { runs++ }))
			r.SpawnLoop("b", func() []Step { return []Step{Delay(1)} })

			r.CancelOwner(c.cancel)
			r.Update(0.1)
			if c.cancel == "b" && r.Len() != 1 {
				t.Fatalf("surviving task should still be in flight, tasks = %d", r.Len())
			}
			for i := 0; i < 9; i++ {
				r.Update(0.1)
			}
			if runs != c.wantRuns {
				t.Fatalf("runs = %d, want %d", runs, c.wantRuns)
			}
			if r.Len() != c.wantTasks {
				t.Fatalf("tasks = %d, want %d", r.Len(), c.wantTasks)
			}
		})
	}
}

func TestRunnerCancelDuringUpdate(t *testing.T) {
	r := NewRunner()
	ran := false
	r.Spawn("a", Do(func() { r.CancelOwner("b") }))
	r.Spawn("b", Do(func() { ran = true }))

	r.Update(0.1)
	if ran {
		t.Fatalf("task canceled mid-frame should not run")
	}
}

func TestRunnerSpawnDuringUpdate(t *testing.T) {
	r := NewRunner()
	ran := false
	r.Spawn("a", Do(func() {
		r.Spawn("a", Do(func() { ran = true }))
	}))

	r.Update(0.1)
	if ran {
		t.Fatalf("task spawned mid-frame should first tick next frame")
	}
	r.Update(0.1)
	if !ran {
		t.Fatalf("spawned task should run on the following frame")
	}
}
