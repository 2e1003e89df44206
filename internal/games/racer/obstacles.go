package racer

// occupiedLanes marks lanes holding an obstacle that is still above the
// playfield or inside the danger band below its top edge.
func (e *Engine) occupiedLanes() []bool {
	occupied := make([]bool, e.cfg.Road.Lanes)
	band := e.cfg.Obstacles.DangerBand
	h := e.cfg.Obstacles.Height

	for _, o := range e.obstacles {
		if o.Y < 0 || (o.Y > -h && o.Y < band) {
			occupied[o.Lane] = true
		}
	}
	return occupied
}

// availableLanes returns the lanes a new obstacle may enter, in lane order.
func (e *Engine) availableLanes() []int {
	lanes := make([]int, 0, e.cfg.Road.Lanes)
	for lane, taken := range e.occupiedLanes() {
		if !taken {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// spawn places a random obstacle in a random free lane. It never forces a
// spawn: with every lane occupied the frame simply gets no new car.
func (e *Engine) spawn() bool {
	lanes := e.availableLanes()
	if len(lanes) == 0 {
		return false
	}
	lane := lanes[e.rng.Intn(len(lanes))]
	variant := e.rng.Intn(e.cfg.Obstacles.Variants)
	e.placeObstacle(lane, variant)
	return true
}

// placeObstacle inserts an obstacle just above the top edge of a lane.
func (e *Engine) placeObstacle(lane, variant int) {
	w := e.cfg.Obstacles.Width
	e.obstacles = append(e.obstacles, Obstacle{
		X:       e.cfg.LaneX(lane, w),
		Y:       -e.cfg.Obstacles.Height,
		Lane:    lane,
		Variant: variant,
	})
}

// advanceObstacles moves every obstacle down by the current speed and drops
// the ones that left the playfield. It returns how many were dropped.
func (e *Engine) advanceObstacles() int {
	passed := 0
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		o.Y += e.speed
		if o.Y < e.cfg.Playfield.Height {
			kept = append(kept, o)
		} else {
			passed++
		}
	}
	e.obstacles = kept
	return passed
}
