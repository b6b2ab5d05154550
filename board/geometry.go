package board

// geometry holds the precomputed neighbor/ray tables for one board side,
// built once per Variant on its first Geometry call (orthogonal tables
// only for variants with OrthogonalCaptures set).
type geometry struct {
	side int
	half int // N/2, playable squares per row

	// step[d][s] is the playable square reached from s by one diagonal
	// step in direction d, or -1 if that step leaves the board.
	step [4][]int8

	// ray[d][s] lists the playable squares reached from s by successive
	// diagonal steps in direction d, nearest first, until the board edge.
	ray [4][][]int8

	// between[a][b] is the bitmask of squares strictly between a and b
	// on their shared diagonal, or 0 if a and b are not co-diagonal.
	between [][]uint64

	rowMask []uint64

	// Orthogonal tables, populated only when built with orthogonal=true.
	stepOrtho [4][]int8
	rayOrtho  [4][][]int8
}

func buildGeometry(side int, orthogonal bool) *geometry {
	half := side / 2
	squares := side * half
	g := &geometry{side: side, half: half}

	evenShifts := [4]int{-(half - 1), -half, half + 1, half}
	oddShifts := [4]int{-half, -(half + 1), half, half - 1}

	for d := 0; d < 4; d++ {
		g.step[d] = make([]int8, squares)
	}
	for sq := 0; sq < squares; sq++ {
		row := sq / half
		col := sq % half
		even := row%2 == 0
		shifts := evenShifts
		blocked := [4]bool{col == half-1, false, col == half-1, false}
		if !even {
			shifts = oddShifts
			blocked = [4]bool{false, col == 0, false, col == 0}
		}
		for d := 0; d < 4; d++ {
			if blocked[d] {
				g.step[d][sq] = -1
				continue
			}
			t := sq + shifts[d]
			if t < 0 || t >= squares || abs(t/half-row) != 1 {
				g.step[d][sq] = -1
				continue
			}
			g.step[d][sq] = int8(t)
		}
	}

	for d := 0; d < 4; d++ {
		g.ray[d] = make([][]int8, squares)
		for sq := 0; sq < squares; sq++ {
			var r []int8
			cur := int8(sq)
			for {
				nxt := g.step[d][cur]
				if nxt < 0 {
					break
				}
				r = append(r, nxt)
				cur = nxt
			}
			g.ray[d][sq] = r
		}
	}

	g.between = make([][]uint64, squares)
	for a := 0; a < squares; a++ {
		g.between[a] = make([]uint64, squares)
		for d := 0; d < 4; d++ {
			var mask uint64
			for _, b := range g.ray[d][a] {
				g.between[a][b] = mask
				mask |= uint64(1) << uint(b)
			}
		}
	}

	g.rowMask = make([]uint64, side)
	for sq := 0; sq < squares; sq++ {
		g.rowMask[sq/half] |= uint64(1) << uint(sq)
	}

	if orthogonal {
		buildOrthogonalGeometry(g, side, half, squares)
	}

	return g
}

// squareToBoardPos and boardPosToSquare translate between the playable-
// square index and the (row, col) coordinates on the full N x N board,
// using the zig-zag numbering convention from spec.md 3.1:
// c(i) = 2*f(i) + ((r(i)+1) mod 2).
func squareToBoardPos(sq, half int) (row, col int) {
	row = sq / half
	f := sq % half
	col = 2*f + ((row + 1) % 2)
	return
}

func boardPosToSquare(row, col, half, side int) int {
	if row < 0 || row >= side || col < 0 || col >= side {
		return -1
	}
	if (col+row+1)%2 != 0 {
		return -1
	}
	f := (col - ((row + 1) % 2)) / 2
	return row*half + f
}

func buildOrthogonalGeometry(g *geometry, side, half, squares int) {
	for d := 0; d < 4; d++ {
		g.stepOrtho[d] = make([]int8, squares)
		g.rayOrtho[d] = make([][]int8, squares)
	}
	dr := [4]int{-2, 0, 2, 0}
	dc := [4]int{0, 2, 0, -2}
	for sq := 0; sq < squares; sq++ {
		row, col := squareToBoardPos(sq, half)
		for d := 0; d < 4; d++ {
			t := boardPosToSquare(row+dr[d], col+dc[d], half, side)
			if t < 0 {
				g.stepOrtho[d][sq] = -1
			} else {
				g.stepOrtho[d][sq] = int8(t)
			}
			var r []int8
			rr, cc := row, col
			for {
				rr += dr[d]
				cc += dc[d]
				t := boardPosToSquare(rr, cc, half, side)
				if t < 0 {
					break
				}
				r = append(r, int8(t))
			}
			g.rayOrtho[d][sq] = r
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
