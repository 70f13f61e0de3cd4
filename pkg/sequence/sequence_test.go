package sequence

import (
	"errors"
	"testing"
)

func seqOf(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestGCDAndLCM(t *testing.T) {
	tests := []struct {
		a, b     int
		gcd, lcm int
	}{
		{2, 3, 1, 6},
		{4, 6, 2, 12},
		{10, 10, 10, 10},
		{1, 7, 1, 7},
		{12, 18, 6, 36},
	}
	for _, tt := range tests {
		if got := GCD(tt.a, tt.b); got != tt.gcd {
			t.Errorf("GCD(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.gcd)
		}
		got, err := LCM(tt.a, tt.b)
		if err != nil {
			t.Fatalf("LCM(%d, %d) returned error: %v", tt.a, tt.b, err)
		}
		if got != tt.lcm {
			t.Errorf("LCM(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.lcm)
		}
	}

	if got := GCD(9, 0); got != 9 {
		t.Errorf("GCD(9, 0) = %d, want 9", got)
	}
}

func TestLCMRejectsZero(t *testing.T) {
	for _, in := range [][2]int{{0, 3}, {3, 0}, {0, 0}} {
		if _, err := LCM(in[0], in[1]); !errors.Is(err, ErrEmpty) {
			t.Errorf("LCM(%d, %d) error = %v, want ErrEmpty", in[0], in[1], err)
		}
	}
}

func TestReplicateWholeSequence(t *testing.T) {
	got, err := Replicate([]string{"a", "b", "c"}, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "a", "b", "c", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReplicateOvershoot(t *testing.T) {
	got, err := Replicate(seqOf(4), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Errorf("len = %d, want 8", len(got))
	}
}

func TestReplicateShorterTargetKeepsSequence(t *testing.T) {
	got, err := Replicate(seqOf(5), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}
}

func TestReplicateEmpty(t *testing.T) {
	if _, err := Replicate([]int{}, 3); !errors.Is(err, ErrEmpty) {
		t.Errorf("error = %v, want ErrEmpty", err)
	}
}

// TestLCMReconciliation checks that both sequences replicated to lcm(a, b)
// are periodic with their original lengths.
func TestLCMReconciliation(t *testing.T) {
	for a := 1; a <= 9; a++ {
		for b := 1; b <= 9; b++ {
			m, err := LCM(a, b)
			if err != nil {
				t.Fatal(err)
			}
			ra, err := Replicate(seqOf(a), m)
			if err != nil {
				t.Fatal(err)
			}
			rb, err := Replicate(seqOf(b), m)
			if err != nil {
				t.Fatal(err)
			}
			if len(ra)%m != 0 || len(rb)%m != 0 {
				t.Fatalf("a=%d b=%d: lengths %d, %d not multiples of %d", a, b, len(ra), len(rb), m)
			}
			for i := 0; i < m; i++ {
				if ra[i] != i%a || rb[i] != i%b {
					t.Fatalf("a=%d b=%d: index %d = (%d, %d), want (%d, %d)", a, b, i, ra[i], rb[i], i%a, i%b)
				}
			}
		}
	}
}

func TestReplicateFuncClonesCopies(t *testing.T) {
	type box struct{ n int }
	orig := []*box{{1}, {2}}
	got, err := ReplicateFunc(orig, 6, func(b *box) *box { c := *b; return &c })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0] != orig[0] || got[1] != orig[1] {
		t.Error("first copy should keep the original elements")
	}
	for i := 2; i < len(got); i++ {
		if got[i] == orig[i%2] {
			t.Errorf("got[%d] aliases the original element", i)
		}
		if got[i].n != orig[i%2].n {
			t.Errorf("got[%d].n = %d, want %d", i, got[i].n, orig[i%2].n)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	if got := CeilDiv(7, 3); got != 3 {
		t.Errorf("CeilDiv(7, 3) = %d, want 3", got)
	}
	if got := CeilDiv(6, 3); got != 2 {
		t.Errorf("CeilDiv(6, 3) = %d, want 2", got)
	}
	if got := CeilDiv(1, 10); got != 1 {
		t.Errorf("CeilDiv(1, 10) = %d, want 1", got)
	}
}
