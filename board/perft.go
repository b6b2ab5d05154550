package board

import "golang.org/x/sync/errgroup"

// Perft counts the leaf positions reachable in exactly depth plies from
// p, used to validate the move generator against published counts
// (spec.md 8).
func Perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	total := 0
	for _, m := range moves {
		p.Push(m)
		total += Perft(p, depth-1)
		p.Pop()
	}
	return total
}

// PerftParallel is Perft with the root moves fanned out across
// goroutines, one position copy per root move so each goroutine owns
// its own mutable position (spec.md 5).
func PerftParallel(p *Position, depth int) (int, error) {
	if depth <= 1 {
		return Perft(p, depth), nil
	}
	moves := p.LegalMoves()
	counts := make([]int, len(moves))
	var g errgroup.Group
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			child := p.Copy()
			child.Push(m)
			counts[i] = Perft(child, depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}
