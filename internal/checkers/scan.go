package checkers

// HasCapture reports whether the piece on sq can jump at least once.
// A man needs an adjacent enemy with an empty square right behind it; a king
// slides over empty squares first, but the first piece it meets must be an
// enemy followed by an empty square.
func (b *Board) HasCapture(sq int) bool {
	pc := b.At(sq)
	if pc == Empty {
		return false
	}
	enemy := pc.Color().Opponent()
	for _, d := range Directions {
		p := b.Neighbor(sq, d)
		if pc.Rank() == King {
			for p >= 0 && b.cells[p] == Empty {
				p = b.Neighbor(p, d)
			}
		}
		if p < 0 || b.cells[p].Color() != enemy {
			continue
		}
		beyond := b.Neighbor(p, d)
		if beyond >= 0 && b.cells[beyond] == Empty {
			return true
		}
	}
	return false
}

// MustCapture reports whether any piece of color c has a capture.
func (b *Board) MustCapture(c Color) bool {
	for sq, pc := range b.cells {
		if pc != Empty && pc.Color() == c && b.HasCapture(sq) {
			return true
		}
	}
	return false
}

// HasSimpleMove reports whether the piece on sq has an empty neighbour in a
// direction it may step to: forward for a man, any for a king.
func (b *Board) HasSimpleMove(sq int) bool {
	pc := b.At(sq)
	if pc == Empty {
		return false
	}
	if pc.Rank() == Man {
		for _, d := range forward(pc.Color()) {
			if n := b.Neighbor(sq, d); n >= 0 && b.cells[n] == Empty {
				return true
			}
		}
		return false
	}
	for _, d := range Directions {
		if n := b.Neighbor(sq, d); n >= 0 && b.cells[n] == Empty {
			return true
		}
	}
	return false
}

// CanMove reports whether the piece on sq has any move at all.
func (b *Board) CanMove(sq int) bool {
	return b.HasCapture(sq) || b.HasSimpleMove(sq)
}

// IsStuck reports whether color c has no legal move with any piece.
func (b *Board) IsStuck(c Color) bool {
	for sq, pc := range b.cells {
		if pc != Empty && pc.Color() == c && b.CanMove(sq) {
			return false
		}
	}
	return true
}
