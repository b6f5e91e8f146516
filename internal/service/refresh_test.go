package service

import (
	"sync"
	"testing"
)

func TestRefreshGateSingleRefreshCommits(t *testing.T) {
	gate := NewRefreshGate()

	token := gate.Begin(1)
	if !gate.Commit(1, token) {
		t.Fatal("expected lone refresh to commit")
	}
}

func TestRefreshGateNewerRefreshWins(t *testing.T) {
	gate := NewRefreshGate()

	stale := gate.Begin(1)
	fresh := gate.Begin(1)

	if gate.Commit(1, stale) {
		t.Fatal("stale token must not commit")
	}
	if !gate.Commit(1, fresh) {
		t.Fatal("expected newest token to commit")
	}
}

func TestRefreshGateCommitOrderDoesNotMatter(t *testing.T) {
	gate := NewRefreshGate()

	stale := gate.Begin(1)
	fresh := gate.Begin(1)

	// The fresh refresh finishing first does not let the stale one in
	if !gate.Commit(1, fresh) {
		t.Fatal("expected newest token to commit")
	}
	if gate.Commit(1, stale) {
		t.Fatal("stale token must not commit after the fresh one")
	}
}

func TestRefreshGateChildrenAreIndependent(t *testing.T) {
	gate := NewRefreshGate()

	tokenA := gate.Begin(1)
	tokenB := gate.Begin(2)

	if !gate.Commit(1, tokenA) {
		t.Fatal("expected child 1 refresh to commit")
	}
	if !gate.Commit(2, tokenB) {
		t.Fatal("expected child 2 refresh to commit")
	}
}

func TestRefreshGateConcurrentBeginsYieldOneWinner(t *testing.T) {
	gate := NewRefreshGate()

	const refreshes = 50
	tokens := make([]uint64, refreshes)

	var wg sync.WaitGroup
	for i := 0; i < refreshes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = gate.Begin(1)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, token := range tokens {
		if gate.Commit(1, token) {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one committing token, got %d", winners)
	}
}
