package vehicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim-oss/clock"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

type stubContext struct {
	clock *clock.Clock
	rc    *config.RuntimeConfig
}

func (s *stubContext) Clock() *clock.Clock { return s.clock }

func (s *stubContext) RuntimeConfig() *config.RuntimeConfig { return s.rc }

// newStubContext 全部采用默认配置（800x600画面、车长20、间距10、速度100、吸附5）
func newStubContext() *stubContext {
	rc := config.NewRuntimeConfig(config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 10000, Interval: 0.05},
		},
	})
	return &stubContext{clock: clock.New(rc.C.Step), rc: rc}
}

// newTestManager 构造车辆管理器及其路口
// 说明：这里不推进信号灯，北向始终持有绿灯
func newTestManager() (*Manager, *junction.Junction) {
	ctx := newStubContext()
	j := junction.New(ctx)
	return NewManager(ctx, j), j
}

func step(m *Manager) {
	m.Prepare()
	m.Update(0.05)
}

func TestVehicleStartsAtPathHead(t *testing.T) {
	m, j := newTestManager()
	id, err := m.Spawn(entity.DirectionNorth, entity.TurnStraight)
	require.NoError(t, err)
	assert.Equal(t, int32(0), id)

	v := m.Get(id)
	_, missing := m.Find([]int32{id, 99})
	assert.Equal(t, []int32{99}, missing)
	_, err = m.GetOrError(99)
	assert.Error(t, err)
	assert.Equal(t, j.GeneratePath(entity.DirectionNorth, entity.TurnStraight)[0], v.Position())
	assert.Equal(t, 0, v.PathIndex())
	assert.False(t, v.Exited())
	assert.Equal(t, 1, m.Count())
}

func TestSpawnRejectsInvalidInput(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Spawn(entity.DirectionAllRed, entity.TurnStraight)
	assert.ErrorIs(t, err, ErrInvalidSpawn)
	_, err = m.Spawn(entity.DirectionNorth, entity.Turn(99))
	assert.ErrorIs(t, err, ErrInvalidSpawn)
	// 拒绝时不改变任何状态，ID计数器不前进
	assert.Equal(t, 0, m.Count())
	id, err := m.Spawn(entity.DirectionNorth, entity.TurnStraight)
	require.NoError(t, err)
	assert.Equal(t, int32(0), id)
}

func TestSpawnRejectsShortHeadway(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Spawn(entity.DirectionNorth, entity.TurnStraight)
	require.NoError(t, err)

	// 发车点仍被前车占着
	_, err = m.Spawn(entity.DirectionNorth, entity.TurnStraight)
	assert.ErrorIs(t, err, ErrNoRoom)

	// 前车驶离足够距离后发车成功
	for i := 0; i < 8; i++ {
		step(m)
	}
	_, err = m.Spawn(entity.DirectionNorth, entity.TurnStraight)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())
}

func TestAdvanceExitsExactlyOnce(t *testing.T) {
	_, j := newTestManager()
	path := j.GeneratePath(entity.DirectionNorth, entity.TurnLeft)
	v := newVehicle(0, entity.DirectionNorth, entity.TurnLeft, path)

	prevIndex := 0
	for i := 0; i < 10000 && !v.Exited(); i++ {
		v.Advance(5, 5)
		require.GreaterOrEqual(t, v.PathIndex(), prevIndex)
		prevIndex = v.PathIndex()
	}
	require.True(t, v.Exited())
	assert.Equal(t, path[len(path)-1], v.Position())

	// 离场后位置冻结
	frozen := v.Position()
	v.Advance(5, 5)
	assert.Equal(t, frozen, v.Position())
}

func TestRedLightStopsAtStopPoint(t *testing.T) {
	m, j := newTestManager()
	// 北向绿灯，南进口车辆必须停在停止点
	id, err := m.Spawn(entity.DirectionSouth, entity.TurnStraight)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		step(m)
	}

	v := m.Get(id)
	assert.False(t, v.Exited())
	assert.Equal(t, j.GeneratePath(entity.DirectionSouth, entity.TurnStraight)[1], v.Position())
	assert.Equal(t, 1, v.PathIndex())

	occ := m.Occupancy()
	assert.True(t, occ.VehiclesOnStopLine)
	assert.False(t, occ.CarsInIntersection)
	assert.Equal(t, 0, occ.WaitingOnGreen) // 绿灯在北向，南向的车不计入
}

func TestQueuedVehiclesNeverOverlap(t *testing.T) {
	m, _ := newTestManager()
	size := 20.0
	_, err := m.Spawn(entity.DirectionSouth, entity.TurnStraight)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		step(m)
	}
	_, err = m.Spawn(entity.DirectionSouth, entity.TurnStraight)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		step(m)
		vs := m.Vehicles()
		require.Len(t, vs, 2)
		dx := vs[0].Position().X - vs[1].Position().X
		dy := vs[0].Position().Y - vs[1].Position().Y
		assert.True(t, dx >= size || dx <= -size || dy >= size || dy <= -size,
			"step %d: boxes overlap, dx=%v dy=%v", i, dx, dy)
	}
}

func TestSpawnRejectsCongestedApproach(t *testing.T) {
	m, _ := newTestManager()
	// 北向绿灯，南进口持续发车直到排满
	for i := 0; i < 600; i++ {
		m.Spawn(entity.DirectionSouth, entity.TurnStraight)
		step(m)
	}

	// 进口道长度250，每辆车占位30，容量8
	assert.Equal(t, 8, m.Count())
	_, err := m.Spawn(entity.DirectionSouth, entity.TurnStraight)
	assert.ErrorIs(t, err, ErrNoRoom)
}
