package main

import "testing"

func TestMainDelegatesToExecute(t *testing.T) {
	calls := 0
	orig := execute
	execute = func() { calls++ }
	t.Cleanup(func() { execute = orig })

	main()

	if calls != 1 {
		t.Fatalf("expected execute to be called once, got %d", calls)
	}
}
