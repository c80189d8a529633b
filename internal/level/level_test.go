package level

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDroneSpawnFreqDecays(t *testing.T) {
	for n := 0; n < 12; n++ {
		want := time.Duration(math.Floor(2000*math.Pow(0.8, float64(n)))) * time.Millisecond
		assert.Equal(t, want, For(n+1).DroneSpawnFreq, "level %d", n+1)
	}
	assert.Equal(t, 2000*time.Millisecond, For(1).DroneSpawnFreq)
	assert.Equal(t, 1600*time.Millisecond, For(2).DroneSpawnFreq)
	assert.Equal(t, 1280*time.Millisecond, For(3).DroneSpawnFreq)
}

func TestBlackHoles(t *testing.T) {
	assert.Equal(t, 2, For(1).BlackHoles)
	assert.Equal(t, 6, For(5).BlackHoles)
}

func TestLevelClampedToOne(t *testing.T) {
	assert.Equal(t, For(1), For(0))
	assert.Equal(t, For(1), For(-4))
}

func TestPowerupFreq(t *testing.T) {
	assert.Equal(t, 15*time.Second, For(1).PowerupFreq)
	assert.Equal(t, 11*time.Second, For(5).PowerupFreq)
	assert.Equal(t, 5*time.Second, For(11).PowerupFreq)
	assert.Equal(t, 5*time.Second, For(40).PowerupFreq)
}

func TestEnemyFighterFreq(t *testing.T) {
	assert.Zero(t, For(1).EnemyFighterFreq)
	assert.Zero(t, For(2).EnemyFighterFreq)
	assert.Equal(t, 8*time.Second, For(3).EnemyFighterFreq)
	assert.Equal(t, 7*time.Second, For(5).EnemyFighterFreq)
	assert.Equal(t, 3*time.Second, For(30).EnemyFighterFreq)
}

func TestRampedDroneFreq(t *testing.T) {
	p := For(1)
	assert.Equal(t, 15*time.Millisecond, p.DroneSpawnFreqRamp)
	assert.Equal(t, 2000*time.Millisecond, p.RampedDroneFreq(0))
	assert.Equal(t, 1970*time.Millisecond, p.RampedDroneFreq(2))
	assert.Equal(t, MinDroneInterval, p.RampedDroneFreq(1000))
	assert.Equal(t, 25*time.Millisecond, For(3).DroneSpawnFreqRamp)
}

func TestFixedParams(t *testing.T) {
	for n := 1; n <= 10; n++ {
		p := For(n)
		assert.Equal(t, n, p.Level)
		assert.Equal(t, MassBudget, p.MassBudget)
		assert.Equal(t, LevelDuration, p.LevelDuration)
	}
}
