package lungbird

// markPassed flags every obstacle whose trailing edge reached centerX and
// returns how many were newly flagged. An obstacle is flagged at most once.
func (f *obstacleField) markPassed(centerX float64) int {
	passed := 0
	for i := range f.items {
		o := &f.items[i]
		if !o.Passed && o.X+f.width <= centerX {
			o.Passed = true
			passed++
		}
	}
	return passed
}
