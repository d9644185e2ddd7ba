package game

import "testing"

func assertBody(t *testing.T, got, want []Position) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("body len=%d want=%d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body[%d]=%v want=%v (got %v)", i, got[i], want[i], got)
		}
	}
}

func TestSnake_ResetExtendsOppositeHeading(t *testing.T) {
	cases := []struct {
		dir  Direction
		want []Position
	}{
		{Right, []Position{{5, 5}, {4, 5}, {3, 5}}},
		{Left, []Position{{5, 5}, {6, 5}, {7, 5}}},
		{Up, []Position{{5, 5}, {5, 6}, {5, 7}}},
		{Down, []Position{{5, 5}, {5, 4}, {5, 3}}},
	}
	for _, c := range cases {
		s := NewSnake(Position{5, 5}, 3, c.dir)
		assertBody(t, s.Body(), c.want)
		if s.Direction() != c.dir {
			t.Fatalf("direction=%v want=%v", s.Direction(), c.dir)
		}
	}
}

func TestSnake_ResetClampsLengthToOne(t *testing.T) {
	s := NewSnake(Position{2, 2}, 0, Right)
	if s.Len() != 1 {
		t.Fatalf("len=%d want=1", s.Len())
	}
}

func TestSnake_MoveKeepsLength(t *testing.T) {
	s := NewSnake(Position{10, 7}, 3, Right)
	s.Move()
	assertBody(t, s.Body(), []Position{{11, 7}, {10, 7}, {9, 7}})
}

func TestSnake_GrowKeepsTail(t *testing.T) {
	s := NewSnake(Position{10, 7}, 3, Right)
	s.Grow()
	assertBody(t, s.Body(), []Position{{11, 7}, {10, 7}, {9, 7}, {8, 7}})
}

func TestSnake_EmptyBodyIsNoop(t *testing.T) {
	s := &Snake{direction: Right}
	s.Move()
	s.Grow()
	if s.Len() != 0 {
		t.Fatalf("len=%d want=0", s.Len())
	}
	if s.Head() != Unplaced {
		t.Fatalf("head=%v want=%v", s.Head(), Unplaced)
	}
}

func TestSnake_SetDirectionRejectsReversal(t *testing.T) {
	s := NewSnake(Position{5, 5}, 3, Up)
	if s.SetDirection(Down) {
		t.Fatalf("reversal accepted")
	}
	if s.Direction() != Up {
		t.Fatalf("direction=%v want=up", s.Direction())
	}
	if !s.SetDirection(Left) {
		t.Fatalf("left rejected")
	}
	if s.Direction() != Left {
		t.Fatalf("direction=%v want=left", s.Direction())
	}
}

func TestSnake_SetDirectionProperty(t *testing.T) {
	all := []Direction{Up, Down, Left, Right}
	for _, cur := range all {
		for _, d := range all {
			s := NewSnake(Position{5, 5}, 3, cur)
			ok := s.SetDirection(d)
			if d == cur.Opposite() {
				if ok || s.Direction() != cur {
					t.Fatalf("%v -> %v: accepted=%v direction=%v", cur, d, ok, s.Direction())
				}
				continue
			}
			if !ok || s.Direction() != d {
				t.Fatalf("%v -> %v: accepted=%v direction=%v", cur, d, ok, s.Direction())
			}
		}
	}
}

func TestSnake_BodyIsCopy(t *testing.T) {
	s := NewSnake(Position{5, 5}, 2, Right)
	b := s.Body()
	b[0] = Position{0, 0}
	if s.Head() != (Position{5, 5}) {
		t.Fatalf("head mutated through Body(): %v", s.Head())
	}
}
