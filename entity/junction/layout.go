package junction

import (
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

// Layout 路口几何布局
// 功能：由几何配置推导出路口区域、车道中心线、停止线区域等运行时常量
// 说明：十字路口位于画面中央，每个方向一条进口道一条出口道；
// 车辆位置取包围盒中心，路径点均落在车道中心线上
type Layout struct {
	Width  float64 // 画面宽度
	Height float64 // 画面高度

	// 路口区域（两条道路的重叠范围）
	X0, Y0 float64
	X1, Y1 float64
	region entity.AABB

	roadWidth   float64
	halfSize    float64 // 车辆包围盒半边长
	stopSetback float64 // 停止时前保险杠到路口边缘的距离
	bandDepth   float64 // 停止线区域深度
}

// newLayout 根据配置计算路口布局
// 参数：g-几何配置，v-车辆配置
// 算法说明：
// 1. 路口区域为居中的roadWidth见方的正方形
// 2. 每条车道中心线位于道路对应半幅的中央（距路口边缘roadWidth/4）
// 3. 停止线区域为路口边缘前深度为“车长+2倍吸附距离”的条带，
//    恰好覆盖停在停止点的一辆车，不覆盖其后方排队车辆
func newLayout(g config.Geometry, v config.Vehicle) *Layout {
	x0 := (g.WindowWidth - g.RoadWidth) / 2
	y0 := (g.WindowHeight - g.RoadWidth) / 2
	x1 := x0 + g.RoadWidth
	y1 := y0 + g.RoadWidth
	return &Layout{
		Width:       g.WindowWidth,
		Height:      g.WindowHeight,
		X0:          x0,
		Y0:          y0,
		X1:          x1,
		Y1:          y1,
		region:      entity.AABB{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1},
		roadWidth:   g.RoadWidth,
		halfSize:    v.Size / 2,
		stopSetback: v.SnapThreshold,
		bandDepth:   v.Size + 2*v.SnapThreshold,
	}
}

// 车道中心线坐标，按行驶朝向区分

// southboundX 向南行驶（北进口）车道的x坐标
func (l *Layout) southboundX() float64 { return l.X0 + l.roadWidth/4 }

// northboundX 向北行驶（南进口）车道的x坐标
func (l *Layout) northboundX() float64 { return l.X1 - l.roadWidth/4 }

// eastboundY 向东行驶（西进口）车道的y坐标
func (l *Layout) eastboundY() float64 { return l.Y1 - l.roadWidth/4 }

// westboundY 向西行驶（东进口）车道的y坐标
func (l *Layout) westboundY() float64 { return l.Y0 + l.roadWidth/4 }

// InIntersection 判断包围盒是否与路口区域相交
func (l *Layout) InIntersection(box entity.AABB) bool {
	return box.Overlaps(l.region)
}

// OnStopLine 判断包围盒是否位于指定进口道的停止线区域
// 参数：dir-包围盒所属车辆自己的进口道方向，box-车辆包围盒
// 说明：只检查行进轴上的坐标，正在跨越路口边缘的车辆同样计入；
// 已完全进入路口或已驶入出口道的车辆不计入
func (l *Layout) OnStopLine(dir entity.Direction, box entity.AABB) bool {
	switch dir {
	case entity.DirectionNorth:
		return box.MaxY >= l.Y0-l.bandDepth && box.MinY <= l.Y0
	case entity.DirectionSouth:
		return box.MinY <= l.Y1+l.bandDepth && box.MaxY >= l.Y1
	case entity.DirectionEast:
		return box.MinX <= l.X1+l.bandDepth && box.MaxX >= l.X1
	case entity.DirectionWest:
		return box.MaxX >= l.X0-l.bandDepth && box.MinX <= l.X0
	default:
		return false
	}
}

// ApproachLength 指定进口道从画面边缘到路口区域的长度
// 说明：用于估算进口道的排队容量
func (l *Layout) ApproachLength(dir entity.Direction) float64 {
	switch dir {
	case entity.DirectionNorth:
		return l.Y0
	case entity.DirectionSouth:
		return l.Height - l.Y1
	case entity.DirectionEast:
		return l.Width - l.X1
	case entity.DirectionWest:
		return l.X0
	default:
		log.Panicf("no approach for direction %v", dir)
		return 0
	}
}
