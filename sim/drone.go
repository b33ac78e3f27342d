package sim

import (
	"math"
	"math/rand"

	"github.com/anbu-05/InnovAct-Hackathon/systems"
)

// Recovery parameters for the reactive policy. A blocked drone tries
// up to recoveryAttempts random turns before teleporting out of the
// local trap.
const (
	recoveryAttempts  = 10
	recoveryTurnSigma = 0.6
	recoveryTurnBias  = 0.4
	jitterChance      = 0.15
	jitterSigma       = 0.4
	// Candidate positions count as blocked when any neighboring
	// obstacle cell center is within this squared distance.
	collisionDistSq = 1.0
)

// Drone is the reactive random-walk agent. It holds a continuous
// position and heading and carries its own random stream so that
// trajectories stay independent and reproducible for a fixed seed.
type Drone struct {
	X, Y    float64
	Heading float64

	// Teleports counts local-trap escapes since creation.
	Teleports int

	speed        float64
	sensorRadius float64
	turnBias     float64

	field *systems.ObstacleField
	cov   *systems.CoverageGrid
	rng   *rand.Rand
}

// NewDrone places a drone at a free position sampled from the field
// with a random initial heading. Fails with ErrNoFreeSpace when the
// field has no free cell.
func NewDrone(field *systems.ObstacleField, cov *systems.CoverageGrid, rng *rand.Rand, speed, sensorRadius float64) (*Drone, error) {
	x, y, ok := field.SampleFreePosition(rng)
	if !ok {
		return nil, ErrNoFreeSpace
	}
	return &Drone{
		X:            x,
		Y:            y,
		Heading:      rng.Float64() * 2 * math.Pi,
		speed:        speed,
		sensorRadius: sensorRadius,
		turnBias:     rng.NormFloat64() * 0.2,
		field:        field,
		cov:          cov,
		rng:          rng,
	}, nil
}

// Step advances the drone one tick and marks the sensor disc around
// its resulting position.
func (d *Drone) Step(dt float64) {
	d.advance(dt)
	d.cov.MarkDisc(d.X, d.Y, d.sensorRadius)
}

// advance runs the movement state machine: try the straight-ahead
// candidate, reflect at borders, recover from blocked candidates with
// random turns, and teleport out of local traps as a last resort.
//
// Border reflection rotates by pi*(0.5 + u/2) and skips the move,
// which biases headings near edges. This matches the reference
// behavior on purpose; changing it would change coverage statistics.
func (d *Drone) advance(dt float64) {
	nx := d.X + math.Cos(d.Heading)*d.speed*dt
	ny := d.Y + math.Sin(d.Heading)*d.speed*dt

	if !d.field.InBounds(nx, ny) {
		d.Heading = systems.NormalizeHeading(d.Heading + math.Pi*(0.5+d.rng.Float64()*0.5))
		return
	}

	if d.positionBlocked(nx, ny) {
		recovered := false
		for attempt := 0; attempt < recoveryAttempts; attempt++ {
			d.Heading += d.rng.NormFloat64()*recoveryTurnSigma + recoveryTurnBias
			nx = d.X + math.Cos(d.Heading)*d.speed*dt
			ny = d.Y + math.Sin(d.Heading)*d.speed*dt
			if d.field.InBounds(nx, ny) && !d.positionBlocked(nx, ny) {
				recovered = true
				break
			}
		}
		if !recovered {
			// Local trap: no unblocked heading found, jump to a fresh
			// free position and end the tick.
			x, y, ok := d.field.SampleFreePosition(d.rng)
			if ok {
				d.X, d.Y = x, y
				d.Heading = d.rng.Float64() * 2 * math.Pi
				d.Teleports++
			}
			return
		}
	}

	// Exploration jitter: occasionally perturb the heading. The move
	// already committed below is unaffected until next tick.
	if d.rng.Float64() < jitterChance {
		d.Heading += d.rng.NormFloat64()*jitterSigma + d.turnBias
	}

	d.X = nx
	d.Y = ny
}

// positionBlocked reports whether a candidate position collides with
// an obstacle: its cell is out of bounds, or any of the 8 neighboring
// cells (or its own) is an obstacle whose center lies within the
// collision distance of the candidate.
func (d *Drone) positionBlocked(x, y float64) bool {
	col := int(x)
	row := int(y)
	if col < 0 || col >= d.field.Width() || row < 0 || row >= d.field.Height() {
		return true
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nc := col + dx
			nr := row + dy
			if nc < 0 || nc >= d.field.Width() || nr < 0 || nr >= d.field.Height() {
				continue
			}
			if !d.field.IsBlocked(nc, nr) {
				continue
			}
			center := float64(nc) + 0.5
			middle := float64(nr) + 0.5
			if (center-x)*(center-x)+(middle-y)*(middle-y) < collisionDistSq {
				return true
			}
		}
	}
	return false
}

// Position returns the drone's continuous position.
func (d *Drone) Position() (float64, float64) { return d.X, d.Y }

// SetSpeed updates the drone's speed in grid units per second.
func (d *Drone) SetSpeed(speed float64) { d.speed = speed }

// State returns a snapshot of the drone.
func (d *Drone) State() AgentState {
	return AgentState{X: d.X, Y: d.Y, Heading: d.Heading}
}
