package vehicle

import (
	"errors"
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
)

var (
	// ErrInvalidSpawn 发车参数不在封闭集合内
	ErrInvalidSpawn = errors.New("vehicle: invalid spawn direction or turn")
	// ErrNoRoom 进口道拥堵或发车点被占用，本次发车被拒绝
	ErrNoRoom = errors.New("vehicle: no room to spawn on the approach")
)

// Manager 车辆管理器
// 功能：持有存活车辆集合，负责发车、每帧的停走决策、位置推进与离场清理
// 说明：vehicles按发车顺序排列；每个进口道维护一条按行驶距离升序的队列，
// 队头为最新发出（距离最小）的车辆
type Manager struct {
	ctx      entity.ITaskContext
	junction entity.IJunction

	data     map[int32]*Vehicle                         // 车辆id->车辆指针映射表
	vehicles []*Vehicle                                 // 存活车辆，发车顺序
	queues   map[entity.Direction]*container.List[*Vehicle] // 进口道队列
	nextID   int32                                      // 下一个车辆ID，只增不复用
}

// NewManager 创建车辆管理器实例
// 参数：ctx-任务上下文，junction-路口
// 返回：空的车辆管理器
func NewManager(ctx entity.ITaskContext, junction entity.IJunction) *Manager {
	queues := make(map[entity.Direction]*container.List[*Vehicle], len(entity.Directions))
	for _, dir := range entity.Directions {
		queues[dir] = &container.List[*Vehicle]{ID: dir.String()}
	}
	return &Manager{
		ctx:      ctx,
		junction: junction,
		data:     make(map[int32]*Vehicle),
		vehicles: make([]*Vehicle, 0),
		queues:   queues,
	}
}

// Spawn 发车
// 功能：在指定进口道生成一辆按指定转向通过路口的车辆
// 参数：dir-进口道方向，turn-转向
// 返回：分配的车辆ID和错误信息
// 算法说明：
// 1. 校验参数在封闭集合内，否则返回ErrInvalidSpawn（不改变任何状态）
// 2. 进口道拥堵（排队数达到容量）时拒绝发车
// 3. 发车点与最新发出车辆的车头间距不足时拒绝发车
// 4. 通过校验后分配ID、生成路径、入队
func (m *Manager) Spawn(dir entity.Direction, turn entity.Turn) (int32, error) {
	if !dir.IsTraffic() || !turn.IsValid() {
		return 0, ErrInvalidSpawn
	}
	if m.congested(dir) {
		return 0, ErrNoRoom
	}
	path := m.junction.GeneratePath(dir, turn)
	cfg := m.ctx.RuntimeConfig().All.Vehicle
	if m.headway(dir, path[0]) < cfg.Size+cfg.SafetyGap {
		return 0, ErrNoRoom
	}

	id := m.nextID
	m.nextID++
	v := newVehicle(id, dir, turn, path)
	m.data[id] = v
	m.vehicles = append(m.vehicles, v)
	m.queues[dir].PushFront(v.node)
	log.Debugf("spawn %v", v)
	return id, nil
}

// headway 发车点与进口道上最新发出车辆的距离
// 返回：距离，进口道为空时为无穷大
func (m *Manager) headway(dir entity.Direction, spawn geometry.Point) float64 {
	first := m.queues[dir].First()
	if first == nil {
		return mathutil.INF
	}
	last := first.Value
	return math.Hypot(spawn.X-last.position.X, spawn.Y-last.position.Y)
}

// congested 判断进口道是否拥堵
// 算法说明：统计队列中尚未通过停止点（游标<=1）的车辆数，
// 达到进口道容量（进口道长度/车辆占位长度）即视为拥堵
func (m *Manager) congested(dir entity.Direction) bool {
	cfg := m.ctx.RuntimeConfig().All.Vehicle
	capacity := int(m.junction.ApproachLength(dir) / (cfg.Size + cfg.SafetyGap))
	count := 0
	for node := m.queues[dir].First(); node != nil; node = node.Next() {
		if node.Value.pathIndex <= 1 {
			count++
		}
	}
	return count >= capacity
}

// Occupancy 聚合当前帧的路口占用信号
// 功能：对所有存活车辆分类，产出信号灯状态机的输入
// 算法说明：
// 1. 路口区域内有车则CarsInIntersection置位
// 2. 位于自己进口道停止线区域的车辆计入VehiclesOnStopLine；
//    其中进口道与当前绿灯方向一致的计入WaitingOnGreen
// 3. 绿灯进口道拥堵情况用于自适应相位
func (m *Manager) Occupancy() entity.Occupancy {
	cfg := m.ctx.RuntimeConfig().All.Vehicle
	half := cfg.Size / 2
	green := m.junction.RightOfWay()
	occ := entity.Occupancy{}
	for _, v := range m.vehicles {
		box := v.Box(half)
		if m.junction.InIntersection(box) {
			occ.CarsInIntersection = true
		}
		if m.junction.OnStopLine(v.direction, box) {
			occ.VehiclesOnStopLine = true
			if v.direction == green {
				occ.WaitingOnGreen++
			}
		}
	}
	if green.IsTraffic() {
		occ.CongestedOnGreen = m.congested(green)
	}
	return occ
}

// Prepare 准备阶段
// 功能：刷新进口道队列的排序键（沿路径行驶距离）
// 说明：同一进口道上车辆不能互相超越，键随位置推进单调增加，队列顺序保持稳定
func (m *Manager) Prepare() {
	for _, v := range m.vehicles {
		v.node.S = v.S()
	}
}

// Update 更新阶段，执行车辆集合的核心逻辑
// 功能：对每辆未离场车辆做停走决策并推进位置，最后清理离场车辆
// 参数：dt-时间步长
// 算法说明：
//  1. 停灯判定：车辆处于停止点（游标==1）且尚未进入路口、
//     且其进口道未持有绿灯（含全红）时停住；已进入路口的车辆
//     不因红灯停住，必须清空路口
//  2. 碰撞判定：用本帧推进后的预测位置做包围盒邻近检查，
//     与任一其他存活车辆的间距不足时停住；检查针对帧开始时的位置快照，
//     与遍历顺序无关
//  3. 推进未停住的车辆，离场与驶出画面的车辆从集合中移除
//
// 说明：碰撞检查是对最近前车的显式近似，不是完整的物理模型
func (m *Manager) Update(dt float64) {
	cfg := m.ctx.RuntimeConfig().All.Vehicle
	step := cfg.Speed * dt
	minGap := cfg.Size + cfg.SafetyGap
	half := cfg.Size / 2
	green := m.junction.RightOfWay()

	// 帧开始时的位置快照，停走决策统一针对快照进行
	frame := lo.Map(m.vehicles, func(v *Vehicle, _ int) geometry.Point {
		return v.position
	})

	for i, v := range m.vehicles {
		if v.exited {
			continue
		}
		inIntersection := m.junction.InIntersection(v.Box(half))
		atBorder := v.pathIndex == 1 && !inIntersection
		if atBorder && v.direction != green {
			continue
		}
		if m.blockedAhead(i, v, frame, step, minGap) {
			continue
		}
		v.Advance(step, cfg.SnapThreshold)
	}

	m.removeGone()
}

// blockedAhead 判断车辆本帧推进是否会逼近其他车辆
// 参数：i-车辆在vehicles中的下标，v-车辆，frame-帧开始时的位置快照，
// step-本帧推进距离，minGap-要求的最小中心间距
// 算法说明：沿归一化方向预测推进后的位置，与所有其他存活车辆
// 的快照位置做双轴间距检查
func (m *Manager) blockedAhead(i int, v *Vehicle, frame []geometry.Point, step, minGap float64) bool {
	if v.pathIndex >= len(v.path)-1 {
		return false
	}
	target := v.path[v.pathIndex+1]
	dx := target.X - v.position.X
	dy := target.Y - v.position.Y
	next := v.position
	if dist := math.Hypot(dx, dy); dist > 0 {
		move := math.Min(step, dist)
		next.X += dx / dist * move
		next.Y += dy / dist * move
	}
	for j, o := range m.vehicles {
		if j == i || o.exited {
			continue
		}
		if math.Abs(next.X-frame[j].X) < minGap && math.Abs(next.Y-frame[j].Y) < minGap {
			return true
		}
	}
	return false
}

// removeGone 移除离场与驶出画面的车辆
func (m *Manager) removeGone() {
	gone := lo.Filter(m.vehicles, func(v *Vehicle, _ int) bool {
		return v.exited || m.offScreen(v)
	})
	if len(gone) == 0 {
		return
	}
	for _, v := range gone {
		m.queues[v.direction].Remove(v.node)
		delete(m.data, v.id)
		log.Debugf("remove %v", v)
	}
	m.vehicles = lo.Filter(m.vehicles, func(v *Vehicle, _ int) bool {
		return !v.exited && !m.offScreen(v)
	})
}

// offScreen 判断车辆是否已远离画面
// 说明：路径的离场点本身在画面外，正常情况下exited先于该判定触发，
// 这里只是对几何配置异常时的兜底
func (m *Manager) offScreen(v *Vehicle) bool {
	g := m.ctx.RuntimeConfig().All.Geometry
	margin := 2 * m.ctx.RuntimeConfig().All.Vehicle.Size
	return v.position.X < -margin || v.position.X > g.WindowWidth+margin ||
		v.position.Y < -margin || v.position.Y > g.WindowHeight+margin
}

// Vehicles 存活车辆列表（发车顺序）
// 说明：供外部渲染协作方只读使用
func (m *Manager) Vehicles() []*Vehicle {
	return m.vehicles
}

// Get 按ID获取车辆，不存在时panic
// 说明：调用方保证ID有效（程序逻辑错误才会触发panic）
func (m *Manager) Get(id int32) *Vehicle {
	v, ok := m.data[id]
	if !ok {
		log.Panicf("vehicle: no vehicle with id %d", id)
	}
	return v
}

// GetOrError 按ID获取车辆，不存在时返回错误
func (m *Manager) GetOrError(id int32) (*Vehicle, error) {
	v, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("vehicle: no vehicle with id %d", id)
	}
	return v, nil
}

// Find 按ID查找车辆
// 参数：ids-车辆ID列表，为空时返回全部存活车辆
// 返回：命中的车辆列表和未命中的ID列表
func (m *Manager) Find(ids []int32) ([]*Vehicle, []int32) {
	return utils.Find(m.data, m.vehicles, ids)
}

// Count 存活车辆数
func (m *Manager) Count() int {
	return len(m.vehicles)
}
