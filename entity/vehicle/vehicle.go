package vehicle

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
)

// Vehicle 车辆实体
// 功能：表示一辆通过路口的模拟车辆，携带身份、转向意图、当前位置与路径进度
// 说明：停走决策不属于车辆，由Manager每帧决定；车辆自身不感知红绿灯
type Vehicle struct {
	id        int32            // 车辆ID，单调分配，单次运行内不复用
	direction entity.Direction // 进口道方向（不可变）
	turn      entity.Turn      // 转向意图（不可变）

	position    geometry.Point   // 当前位置（包围盒中心）
	path        []geometry.Point // 发车时生成的路径（不可变）
	pathLengths []float64        // 路径点的累积长度表
	pathIndex   int              // 当前路径点游标，单调不减
	exited      bool             // 是否已走完路径，置位后位置不再变化

	node *container.ListNode[*Vehicle] // 所在进口道队列中的节点
}

// newVehicle 创建车辆
// 参数：id-车辆ID，dir-进口道方向，turn-转向，path-路径（至少2个路径点）
// 返回：位于路径起点的车辆实例
func newVehicle(id int32, dir entity.Direction, turn entity.Turn, path []geometry.Point) *Vehicle {
	if len(path) < 2 {
		log.Panicf("vehicle %d: path must have at least 2 waypoints, got %d", id, len(path))
	}
	v := &Vehicle{
		id:          id,
		direction:   dir,
		turn:        turn,
		position:    path[0],
		path:        path,
		pathLengths: geometry.GetPolylineLengths2D(path),
	}
	v.node = &container.ListNode[*Vehicle]{S: 0, Value: v}
	return v
}

func (v *Vehicle) String() string {
	return fmt.Sprintf(
		"Vehicle{ID:%d, Dir:%v, Turn:%v, Pos:(%.1f,%.1f), Index:%d}",
		v.id, v.direction, v.turn, v.position.X, v.position.Y, v.pathIndex,
	)
}

// ID 获取车辆ID
func (v *Vehicle) ID() int32 {
	return v.id
}

// Direction 获取进口道方向
func (v *Vehicle) Direction() entity.Direction {
	return v.direction
}

// Turn 获取转向意图
func (v *Vehicle) Turn() entity.Turn {
	return v.turn
}

// Position 获取当前位置（包围盒中心）
func (v *Vehicle) Position() geometry.Point {
	return v.position
}

// PathIndex 获取当前路径点游标
func (v *Vehicle) PathIndex() int {
	return v.pathIndex
}

// Exited 是否已走完路径
func (v *Vehicle) Exited() bool {
	return v.exited
}

// S 沿路径已行驶的距离
// 算法说明：当前路径点的累积长度加上到当前位置的直线距离
func (v *Vehicle) S() float64 {
	return v.pathLengths[v.pathIndex] +
		math.Hypot(v.position.X-v.path[v.pathIndex].X, v.position.Y-v.path[v.pathIndex].Y)
}

// Box 车辆包围盒
// 参数：halfSize-包围盒半边长
func (v *Vehicle) Box(halfSize float64) entity.AABB {
	return entity.AABB{
		MinX: v.position.X - halfSize,
		MinY: v.position.Y - halfSize,
		MaxX: v.position.X + halfSize,
		MaxY: v.position.Y + halfSize,
	}
}

// Advance 沿路径向下一个路径点推进
// 参数：step-本帧推进距离，snap-到达路径点的吸附距离
// 算法说明：
// 1. 已离场则不动
// 2. 距目标路径点不足snap时吸附到路径点并前移游标；
//    游标到达最后一个路径点时置离场标志
// 3. 否则沿归一化方向向目标移进min(step, 剩余距离)，保证不会越过目标
func (v *Vehicle) Advance(step, snap float64) {
	if v.exited {
		return
	}
	target := v.path[v.pathIndex+1]
	dx := target.X - v.position.X
	dy := target.Y - v.position.Y
	dist := math.Hypot(dx, dy)
	if dist < snap {
		v.position = target
		v.pathIndex++
		if v.pathIndex == len(v.path)-1 {
			v.exited = true
		}
		return
	}
	move := math.Min(step, dist)
	v.position.X += dx / dist * move
	v.position.Y += dy / dist * move
}
