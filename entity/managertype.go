package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
)

// Manager依赖倒置

// entity/junction/junction.go的依赖倒置
type IJunction interface {
	// 生成从指定进口道按指定转向通过路口的路径
	GeneratePath(dir Direction, turn Turn) []geometry.Point
	// 判断包围盒是否与路口区域相交
	InIntersection(box AABB) bool
	// 判断包围盒是否位于指定进口道的停止线区域
	OnStopLine(dir Direction, box AABB) bool
	// 指定进口道从画面边缘到路口区域的长度
	ApproachLength(dir Direction) float64
	// 当前获得通行权的方向（可能为全红）
	RightOfWay() Direction

	// 更新阶段，推进信号灯状态机
	Update(t float64, occ Occupancy)
}
