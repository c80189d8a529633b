// Package level derives per-level difficulty parameters.
package level

import (
	"math"
	"time"
)

// Difficulty curve constants.
const (
	MassBudget         = 400.0
	LevelDuration      = 45 * time.Second
	RampInterval       = 3 * time.Second
	MinDroneInterval   = 200 * time.Millisecond
	InitialLives       = 5
	EnemyFighterLevel  = 3
	baseDroneInterval  = 2000.0
	droneDecay         = 0.8
	minPowerupInterval = 5000
)

// Params are the immutable difficulty settings of one level.
type Params struct {
	Level              int
	BlackHoles         int
	MassBudget         float64
	DroneSpawnFreq     time.Duration // Interval between drone spawns at level start
	DroneSpawnFreqRamp time.Duration // Interval reduction per ramp tick
	PowerupFreq        time.Duration
	EnemyFighterFreq   time.Duration // Zero disables enemy fighters
	LevelDuration      time.Duration
}

// For returns the parameters of level n. Levels below 1 are treated as 1.
func For(n int) Params {
	if n < 1 {
		n = 1
	}
	p := Params{
		Level:              n,
		BlackHoles:         n + 1,
		MassBudget:         MassBudget,
		DroneSpawnFreq:     time.Duration(math.Floor(baseDroneInterval*math.Pow(droneDecay, float64(n-1)))) * time.Millisecond,
		DroneSpawnFreqRamp: time.Duration(15+5*(n-1)) * time.Millisecond,
		PowerupFreq:        time.Duration(max(minPowerupInterval, 15000-1000*(n-1))) * time.Millisecond,
		LevelDuration:      LevelDuration,
	}
	if n >= EnemyFighterLevel {
		p.EnemyFighterFreq = time.Duration(max(3000, 8000-500*(n-EnemyFighterLevel))) * time.Millisecond
	}
	return p
}

// RampedDroneFreq returns the drone interval after ticks ramp ticks,
// never below MinDroneInterval.
func (p Params) RampedDroneFreq(ticks int) time.Duration {
	return max(p.DroneSpawnFreq-time.Duration(ticks)*p.DroneSpawnFreqRamp, MinDroneInterval)
}
