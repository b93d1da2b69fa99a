package entity

import (
	"fmt"
)

// Direction 进口道方向
// 功能：标识车辆进入路口的方位，同时作为信号灯当前放行方向
// 说明：AllRed为特殊的全红状态，表示没有任何方向获得通行权，
// 仅用于信号灯状态，不会作为车辆的进口道方向出现
type Direction int32

const (
	DirectionNorth Direction = iota // 北进口
	DirectionSouth                  // 南进口
	DirectionEast                   // 东进口
	DirectionWest                   // 西进口
	DirectionAllRed                 // 全红（清空路口用）
)

// Directions 四个进口道方向，按信号灯轮转顺序排列（北→南→东→西）
var Directions = [4]Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}

func (d Direction) String() string {
	switch d {
	case DirectionNorth:
		return "north"
	case DirectionSouth:
		return "south"
	case DirectionEast:
		return "east"
	case DirectionWest:
		return "west"
	case DirectionAllRed:
		return "all-red"
	default:
		return fmt.Sprintf("direction(%d)", int32(d))
	}
}

// IsTraffic 判断是否为进口道方向（即非全红状态）
func (d Direction) IsTraffic() bool {
	switch d {
	case DirectionNorth, DirectionSouth, DirectionEast, DirectionWest:
		return true
	default:
		return false
	}
}

// Next 获取轮转顺序中的下一个进口道方向
// 算法说明：北→南→东→西→北循环，全红状态没有后继
func (d Direction) Next() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionEast
	case DirectionEast:
		return DirectionWest
	case DirectionWest:
		return DirectionNorth
	default:
		log.Panicf("direction %v has no successor", d)
		return DirectionAllRed
	}
}

// Turn 车辆在路口的转向意图
// 说明：发车时确定，之后不可变
type Turn int32

const (
	TurnLeft     Turn = iota // 左转
	TurnRight                // 右转
	TurnStraight             // 直行
)

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	case TurnStraight:
		return "straight"
	default:
		return fmt.Sprintf("turn(%d)", int32(t))
	}
}

// IsValid 判断转向值是否在封闭集合内
func (t Turn) IsValid() bool {
	switch t {
	case TurnLeft, TurnRight, TurnStraight:
		return true
	default:
		return false
	}
}

// Occupancy 路口占用信号
// 功能：World每帧聚合的占用统计，作为信号灯状态机的输入
type Occupancy struct {
	WaitingOnGreen     int  // 当前绿灯进口道停止线上的等待车辆数
	CarsInIntersection bool // 路口区域内是否有车
	VehiclesOnStopLine bool // 任一进口道停止线上是否有车
	CongestedOnGreen   bool // 当前绿灯进口道是否拥堵（自适应相位用）
}

// AABB 轴对齐包围盒
type AABB struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Overlaps 判断两个包围盒是否相交
func (b AABB) Overlaps(o AABB) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinY < o.MaxY && b.MaxY > o.MinY
}
