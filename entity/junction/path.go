package junction

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// pathKey 路径表的键（进口道方向×转向）
type pathKey struct {
	Dir  entity.Direction
	Turn entity.Turn
}

// pathKeys 全部12种(方向,转向)组合
func pathKeys() []pathKey {
	keys := make([]pathKey, 0, 12)
	for _, dir := range entity.Directions {
		for _, turn := range []entity.Turn{entity.TurnLeft, entity.TurnRight, entity.TurnStraight} {
			keys = append(keys, pathKey{Dir: dir, Turn: turn})
		}
	}
	return keys
}

// buildPath 生成一条从发车点到离场点的路径
// 功能：纯函数，对12种(方向,转向)组合给出确定的折线路径
// 参数：l-路口布局，dir-进口道方向，turn-转向
// 返回：路径点序列（车辆包围盒中心的轨迹）
// 算法说明：每条路径由4个路径点构成：
// 1. 发车点：进口道中心线上完全位于画面外的一点
// 2. 停止点：前保险杠距路口边缘stopSetback处，红灯时车辆停在这里
// 3. 转弯点：直行时为路口内侧一点，转向时为目标车道中心线的交点
// 4. 离场点：出口道中心线上完全位于画面外的一点
// 左转与右转经过不同的转弯点，几何上不重合；直行为轴对齐直线
func buildPath(l *Layout, dir entity.Direction, turn entity.Turn) []geometry.Point {
	size := 2 * l.halfSize
	stop := l.stopSetback + l.halfSize
	switch dir {
	case entity.DirectionNorth:
		// 北进口，向南行驶
		x := l.southboundX()
		entry := []geometry.Point{
			{X: x, Y: -size},
			{X: x, Y: l.Y0 - stop},
		}
		switch turn {
		case entity.TurnStraight:
			return append(entry,
				geometry.Point{X: x, Y: l.Y0 + size},
				geometry.Point{X: x, Y: l.Height + size},
			)
		case entity.TurnLeft:
			// 左转向东
			return append(entry,
				geometry.Point{X: x, Y: l.eastboundY()},
				geometry.Point{X: l.Width + size, Y: l.eastboundY()},
			)
		case entity.TurnRight:
			// 右转向西
			return append(entry,
				geometry.Point{X: x, Y: l.westboundY()},
				geometry.Point{X: -size, Y: l.westboundY()},
			)
		}
	case entity.DirectionSouth:
		// 南进口，向北行驶
		x := l.northboundX()
		entry := []geometry.Point{
			{X: x, Y: l.Height + size},
			{X: x, Y: l.Y1 + stop},
		}
		switch turn {
		case entity.TurnStraight:
			return append(entry,
				geometry.Point{X: x, Y: l.Y1 - size},
				geometry.Point{X: x, Y: -size},
			)
		case entity.TurnLeft:
			// 左转向西
			return append(entry,
				geometry.Point{X: x, Y: l.westboundY()},
				geometry.Point{X: -size, Y: l.westboundY()},
			)
		case entity.TurnRight:
			// 右转向东
			return append(entry,
				geometry.Point{X: x, Y: l.eastboundY()},
				geometry.Point{X: l.Width + size, Y: l.eastboundY()},
			)
		}
	case entity.DirectionEast:
		// 东进口，向西行驶
		y := l.westboundY()
		entry := []geometry.Point{
			{X: l.Width + size, Y: y},
			{X: l.X1 + stop, Y: y},
		}
		switch turn {
		case entity.TurnStraight:
			return append(entry,
				geometry.Point{X: l.X1 - size, Y: y},
				geometry.Point{X: -size, Y: y},
			)
		case entity.TurnLeft:
			// 左转向南
			return append(entry,
				geometry.Point{X: l.southboundX(), Y: y},
				geometry.Point{X: l.southboundX(), Y: l.Height + size},
			)
		case entity.TurnRight:
			// 右转向北
			return append(entry,
				geometry.Point{X: l.northboundX(), Y: y},
				geometry.Point{X: l.northboundX(), Y: -size},
			)
		}
	case entity.DirectionWest:
		// 西进口，向东行驶
		y := l.eastboundY()
		entry := []geometry.Point{
			{X: -size, Y: y},
			{X: l.X0 - stop, Y: y},
		}
		switch turn {
		case entity.TurnStraight:
			return append(entry,
				geometry.Point{X: l.X0 + size, Y: y},
				geometry.Point{X: l.Width + size, Y: y},
			)
		case entity.TurnLeft:
			// 左转向北
			return append(entry,
				geometry.Point{X: l.northboundX(), Y: y},
				geometry.Point{X: l.northboundX(), Y: -size},
			)
		case entity.TurnRight:
			// 右转向南
			return append(entry,
				geometry.Point{X: l.southboundX(), Y: y},
				geometry.Point{X: l.southboundX(), Y: l.Height + size},
			)
		}
	}
	log.Panicf("no path for direction %v turn %v", dir, turn)
	return nil
}
