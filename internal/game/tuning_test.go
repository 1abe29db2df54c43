package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTuning_Defaults(t *testing.T) {
	tu := DefaultTuning()
	s, b := tu.Snapshot()
	assert.Equal(t, DefaultWallStickiness, s)
	assert.Equal(t, DefaultWallBounceFactor, b)
}

func TestTuning_SettersClamp(t *testing.T) {
	tu := NewTuning(-1, 7)
	assert.Equal(t, 0.0, tu.WallStickiness())
	assert.Equal(t, 1.0, tu.WallBounceFactor())

	tu.SetWallStickiness(0.25)
	tu.SetWallBounceFactor(-0.5)
	assert.Equal(t, 0.25, tu.WallStickiness())
	assert.Equal(t, 0.0, tu.WallBounceFactor())
}

func TestTuning_AdjustStickiness(t *testing.T) {
	tu := DefaultTuning()

	assert.InDelta(t, 0.5, tu.AdjustStickiness(Increase), 1e-9)
	assert.InDelta(t, 0.4, tu.AdjustStickiness(Decrease), 1e-9)

	for i := 0; i < 20; i++ {
		tu.AdjustStickiness(Increase)
	}
	assert.Equal(t, 1.0, tu.WallStickiness())
	for i := 0; i < 20; i++ {
		tu.AdjustStickiness(Decrease)
	}
	assert.Equal(t, 0.0, tu.WallStickiness())
}

func TestTuning_AdjustBounceFactor(t *testing.T) {
	tu := DefaultTuning()
	assert.InDelta(t, 0.65, tu.AdjustBounceFactor(Increase), 1e-9)
	assert.InDelta(t, 0.6, tu.AdjustBounceFactor(Decrease), 1e-9)
}

func TestTuning_ConcurrentWriter(t *testing.T) {
	tu := DefaultTuning()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tu.AdjustStickiness(Direction(i % 2))
			tu.SetWallBounceFactor(float64(i%10) / 10)
		}
	}()
	for i := 0; i < 1000; i++ {
		s, b := tu.Snapshot()
		assert.True(t, s >= 0 && s <= 1)
		assert.True(t, b >= 0 && b <= 1)
	}
	wg.Wait()
}
