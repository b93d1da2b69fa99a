package trafficlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

var testConfig = config.TrafficLight{
	MaxPhaseSeconds:  5,
	NoTrafficGraceMS: 500,
}

func TestInitialState(t *testing.T) {
	c := New(testConfig, 0)
	assert.Equal(t, entity.DirectionNorth, c.Current())
	assert.Equal(t, entity.DirectionNorth, c.LastGreen())
}

func TestPhaseTimeout(t *testing.T) {
	c := New(testConfig, 0)
	// 持续有车等待，路口与停止线均空：到达时限前保持北向绿灯
	busy := entity.Occupancy{WaitingOnGreen: 1}
	for _, tt := range []float64{0.05, 1, 2.5, 4.95} {
		c.Update(tt, busy)
		assert.Equal(t, entity.DirectionNorth, c.Current(), "t=%v", tt)
	}
	// 恰好到达时限且路口为空：直接切到南向，跳过全红
	c.Update(5, busy)
	assert.Equal(t, entity.DirectionSouth, c.Current())
	assert.Equal(t, entity.DirectionSouth, c.LastGreen())
}

func TestPhaseTimeoutIntoAllRed(t *testing.T) {
	c := New(testConfig, 0)
	occ := entity.Occupancy{WaitingOnGreen: 1, VehiclesOnStopLine: true}
	c.Update(5, occ)
	assert.Equal(t, entity.DirectionAllRed, c.Current())
	// lastGreen保持不变，供全红解除时推算后继方向
	assert.Equal(t, entity.DirectionNorth, c.LastGreen())
}

func TestAllRedHoldsUntilClear(t *testing.T) {
	c := New(testConfig, 0)
	c.Update(5, entity.Occupancy{CarsInIntersection: true, VehiclesOnStopLine: true})
	assert.Equal(t, entity.DirectionAllRed, c.Current())
	// 路口内仍有车：全红不限时长，一直保持
	for tt := 5.05; tt < 60; tt += 0.05 {
		c.Update(tt, entity.Occupancy{CarsInIntersection: true})
		assert.Equal(t, entity.DirectionAllRed, c.Current())
	}
	// 路口清空的下一帧立即放行lastGreen的后继方向
	c.Update(60, entity.Occupancy{})
	assert.Equal(t, entity.DirectionSouth, c.Current())
}

func TestNoTrafficGrace(t *testing.T) {
	c := New(testConfig, 0)
	// 无车等待：宽限期内保持绿灯
	c.Update(0.45, entity.Occupancy{})
	assert.Equal(t, entity.DirectionNorth, c.Current())
	// 宽限期一到即切换
	c.Update(0.5, entity.Occupancy{})
	assert.Equal(t, entity.DirectionSouth, c.Current())
}

func TestGraceResetByWaiting(t *testing.T) {
	c := New(testConfig, 0)
	// 0.4s时出现等待车辆，宽限期计时重置
	c.Update(0.4, entity.Occupancy{WaitingOnGreen: 1})
	c.Update(0.6, entity.Occupancy{})
	assert.Equal(t, entity.DirectionNorth, c.Current())
	// 自0.4s起重新累计0.5s后切换
	c.Update(0.9, entity.Occupancy{})
	assert.Equal(t, entity.DirectionSouth, c.Current())
}

func TestCycleOrder(t *testing.T) {
	c := New(testConfig, 0)
	busy := entity.Occupancy{WaitingOnGreen: 1}
	want := []entity.Direction{
		entity.DirectionSouth, entity.DirectionEast, entity.DirectionWest,
		entity.DirectionNorth, entity.DirectionSouth,
	}
	now := 0.0
	for _, dir := range want {
		now += 5
		c.Update(now, busy)
		assert.Equal(t, dir, c.Current())
	}
}

func TestCycleOrderAcrossAllRed(t *testing.T) {
	c := New(testConfig, 0)
	// 超时时停止线上有车：先全红，清空后仍按顺序切到南向
	c.Update(5, entity.Occupancy{WaitingOnGreen: 1, VehiclesOnStopLine: true, CarsInIntersection: true})
	assert.Equal(t, entity.DirectionAllRed, c.Current())
	c.Update(6, entity.Occupancy{})
	assert.Equal(t, entity.DirectionSouth, c.Current())
	// 下一轮再全红，解除后为东向
	c.Update(11, entity.Occupancy{WaitingOnGreen: 1, CarsInIntersection: true})
	c.Update(12, entity.Occupancy{})
	assert.Equal(t, entity.DirectionEast, c.Current())
}

func TestAdaptivePhase(t *testing.T) {
	cfg := testConfig
	cfg.Adaptive = true
	c := New(cfg, 0)

	// 拥堵：下一相位延长到10s
	c.Update(5, entity.Occupancy{WaitingOnGreen: 1, CongestedOnGreen: true})
	assert.Equal(t, entity.DirectionSouth, c.Current())
	c.Update(14.95, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionSouth, c.Current())
	c.Update(15, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionEast, c.Current())

	// 排队超过5辆：下一相位延长到7s
	c.Update(22, entity.Occupancy{WaitingOnGreen: 6})
	assert.Equal(t, entity.DirectionWest, c.Current())
	c.Update(28.95, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionWest, c.Current())
	c.Update(29, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionNorth, c.Current())
}

func TestAdaptiveIdleShrinks(t *testing.T) {
	cfg := testConfig
	cfg.Adaptive = true
	c := New(cfg, 0)
	// 无车切换：下一相位缩短到4s
	c.Update(0.5, entity.Occupancy{})
	assert.Equal(t, entity.DirectionSouth, c.Current())
	c.Update(4.45, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionSouth, c.Current())
	c.Update(4.5, entity.Occupancy{WaitingOnGreen: 1})
	assert.Equal(t, entity.DirectionEast, c.Current())
}
