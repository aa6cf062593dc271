package domain

import "testing"

func TestEasyMoveStaysInBounds(t *testing.T) {
	draws := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 99, 1 << 31, ^uint32(0)}
	for remaining := uint32(1); remaining <= 12; remaining++ {
		for maxPerTurn := uint32(1); maxPerTurn <= 6; maxPerTurn++ {
			upper := min(remaining, maxPerTurn)
			for _, draw := range draws {
				got := EasyMove(draw, remaining, maxPerTurn)
				if got < 1 || got > upper {
					t.Fatalf("EasyMove(%d, %d, %d) = %d, want in [1, %d]", draw, remaining, maxPerTurn, got, upper)
				}
			}
		}
	}
}

func TestEasyMoveZeroModulusUsesBound(t *testing.T) {
	tests := []struct {
		name       string
		draw       uint32
		remaining  uint32
		maxPerTurn uint32
		want       uint32
	}{
		{name: "bound is max", draw: 10, remaining: 72, maxPerTurn: 5, want: 5},
		{name: "bound is remaining", draw: 6, remaining: 3, maxPerTurn: 5, want: 3},
		{name: "plain modulus", draw: 7, remaining: 72, maxPerTurn: 5, want: 2},
		{name: "remaining equals max", draw: 4, remaining: 4, maxPerTurn: 4, want: 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EasyMove(tc.draw, tc.remaining, tc.maxPerTurn); got != tc.want {
				t.Fatalf("EasyMove = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHardMove(t *testing.T) {
	tests := []struct {
		remaining  uint32
		maxPerTurn uint32
		want       uint32
	}{
		{remaining: 72, maxPerTurn: 5, want: 5},
		{remaining: 70, maxPerTurn: 5, want: 4},
		{remaining: 67, maxPerTurn: 5, want: 1},
		{remaining: 3, maxPerTurn: 5, want: 3},
		{remaining: 6, maxPerTurn: 5, want: 5},
		{remaining: 0, maxPerTurn: 5, want: 0},
	}
	for _, tc := range tests {
		if got := HardMove(tc.remaining, tc.maxPerTurn); got != tc.want {
			t.Fatalf("HardMove(%d, %d) = %d, want %d", tc.remaining, tc.maxPerTurn, got, tc.want)
		}
	}
}

func TestHardMoveLeavesMultipleOfWindow(t *testing.T) {
	const maxPerTurn = 5
	for remaining := uint32(1); remaining <= 60; remaining++ {
		move := HardMove(remaining, maxPerTurn)
		if move < 1 || move > min(remaining, maxPerTurn) {
			t.Fatalf("HardMove(%d) = %d out of bounds", remaining, move)
		}
		if remaining%(maxPerTurn+1) != 0 && (remaining-move)%(maxPerTurn+1) != 0 {
			t.Fatalf("HardMove(%d) left %d, want a multiple of %d", remaining, remaining-move, maxPerTurn+1)
		}
	}
}
