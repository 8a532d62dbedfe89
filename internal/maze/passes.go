package maze

// builder holds the state of one generation attempt.
type builder struct {
	grid   *Grid
	src    Source
	params Params
	target int

	start         Coord
	last          Coord // Cell the carver stopped on
	openCount     int
	reachedBorder bool
	exhausted     bool // Carving stack emptied before the target was met
	forceReached  bool
}

// randomInterior draws a uniformly random interior cell.
func (b *builder) randomInterior() Coord {
	n := b.grid.N
	row := b.src.IntN(n-2) + 1
	col := b.src.IntN(n-2) + 1
	return At(row, col)
}

// carve runs a randomized depth-first search over the step-2 lattice until
// the open-cell target is hit or the stack is exhausted. Each step opens the
// destination and the cell between, but counts once.
func (b *builder) carve() {
	b.start = b.randomInterior()
	b.grid.Set(b.start, Open)
	b.openCount = 1
	b.last = b.start

	stack := []Coord{b.start}
	for len(stack) > 0 && b.openCount < b.target {
		cur := stack[len(stack)-1]
		b.last = cur

		neighbors := b.carveableNeighbors(cur)
		if neighbors.len() == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := neighbors.pick(b.src)
		b.grid.Set(next, Open)
		b.grid.Set(cur.Midpoint(next), Open)
		stack = append(stack, next)
		b.openCount++

		if b.grid.IsInnerRing(next) {
			b.reachedBorder = true
		}
	}

	if len(stack) > 0 {
		b.last = stack[len(stack)-1]
	} else {
		b.exhausted = true
	}
}

// carveableNeighbors returns Wall cells two steps away whose coordinates keep
// both the cell and the stepping stone inside the border ring.
func (b *builder) carveableNeighbors(c Coord) coordBuf {
	var buf coordBuf
	for _, d := range Dirs {
		next := c.Step(d, 2)
		if b.grid.IsInterior(next) && b.grid.At(next) == Wall {
			buf.push(next)
		}
	}
	return buf
}

// forcePathToBorder walks single steps from the carver's last cell into
// adjacent interior walls until it lands on the inner ring. A dead end ends
// the walk quietly; later passes keep the grid usable. With an emptied
// carving stack there is no last cell, which faults the attempt.
func (b *builder) forcePathToBorder() error {
	if b.exhausted {
		return fault(PassBorderForce, "carving from %v backtracked fully without reaching the inner ring", b.start)
	}

	cur := b.last
	for !b.grid.IsInnerRing(cur) {
		var walls coordBuf
		for _, d := range Dirs {
			next := cur.Step(d, 1)
			if b.grid.IsInterior(next) && b.grid.At(next) == Wall {
				walls.push(next)
			}
		}
		if walls.len() == 0 {
			return nil
		}

		next := walls.pick(b.src)
		b.grid.Set(next, Open)
		b.openCount++
		cur = next
	}
	b.forceReached = true
	return nil
}

// fillToTarget opens random interior walls until the target count is met.
func (b *builder) fillToTarget() error {
	n := b.grid.N
	budget := b.params.FillAttemptsFactor * n * n
	for draws := 0; b.openCount < b.target; draws++ {
		if draws >= budget {
			return fault(PassFill, "open count %d below target %d after %d draws", b.openCount, b.target, draws)
		}
		c := b.randomInterior()
		if b.grid.At(c) == Wall {
			b.grid.Set(c, Open)
			b.openCount++
		}
	}
	return nil
}

// ensureBorderAccess opens exactly one random border cell and one border cell
// next to an open inner-ring cell (possibly the same one), connecting each
// inward with walkToBorder.
func (b *builder) ensureBorderAccess() error {
	border := b.grid.BorderCells()
	for i := len(border) - 1; i > 0; i-- {
		j := b.src.IntN(i + 1)
		border[i], border[j] = border[j], border[i]
	}
	for _, c := range border {
		if b.grid.At(c) != Wall {
			continue
		}
		b.grid.Set(c, Open)
		if err := b.walkToBorder(c); err != nil {
			return err
		}
		break
	}

	exits := b.innerRingExits()
	if len(exits) == 0 {
		return fault(PassBorderAccess, "no open cell on the inner ring")
	}
	exit := exits[b.src.IntN(len(exits))]
	b.grid.Set(exit, Open)
	return b.walkToBorder(exit)
}

// innerRingExits returns the border cell outside every open inner-ring cell.
// Corner inner-ring cells contribute two exits.
func (b *builder) innerRingExits() []Coord {
	n := b.grid.N
	var exits []Coord
	for i := 1; i < n-1; i++ {
		if b.grid.At(At(1, i)) == Open {
			exits = append(exits, At(0, i))
		}
		if b.grid.At(At(n-2, i)) == Open {
			exits = append(exits, At(n-1, i))
		}
		if b.grid.At(At(i, 1)) == Open {
			exits = append(exits, At(i, 0))
		}
		if b.grid.At(At(i, n-2)) == Open {
			exits = append(exits, At(i, n-1))
		}
	}
	return exits
}

// walkToBorder steps in random axis directions from c, opening interior
// walls it enters, until a step would leave the interior. A draw that points
// at an open interior cell is discarded and the walker stays put. It never
// opens a border cell.
func (b *builder) walkToBorder(c Coord) error {
	n := b.grid.N
	budget := b.params.WalkStepsFactor * n * n
	cur := c
	for steps := 0; steps < budget; steps++ {
		next := cur.Step(Dirs[b.src.IntN(len(Dirs))], 1)
		if !b.grid.IsInterior(next) {
			return nil
		}
		if b.grid.At(next) == Open {
			continue
		}
		b.grid.Set(next, Open)
		cur = next
	}
	return fault(PassBorderAccess, "walk from %v did not reach the border in %d steps", c, budget)
}
