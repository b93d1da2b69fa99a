package junction

import (
	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/junction/trafficlight"
)

// Junction 路口实体
// 功能：持有路口布局与信号灯控制器，提供路径生成与占用区域查询
// 说明：整个仿真只有一个路口，生命周期与仿真一致
type Junction struct {
	ctx entity.ITaskContext

	layout *Layout
	light  *trafficlight.Controller              // 信号灯模块
	paths  map[pathKey][]geometry.Point          // (方向,转向)->路径的预计算映射表
}

// New 创建并初始化路口实例
// 功能：根据配置计算布局，预生成全部12条路径，创建信号灯控制器
// 参数：ctx-任务上下文
// 返回：初始化完成的Junction实例
func New(ctx entity.ITaskContext) *Junction {
	c := ctx.RuntimeConfig().All
	layout := newLayout(c.Geometry, c.Vehicle)
	keys := pathKeys()
	built := parallel.GoMap(keys, func(k pathKey) []geometry.Point {
		return buildPath(layout, k.Dir, k.Turn)
	})
	j := &Junction{
		ctx:    ctx,
		layout: layout,
		light:  trafficlight.New(c.TrafficLight, ctx.Clock().T),
		paths: lo.SliceToMap(lo.Range(len(keys)), func(i int) (pathKey, []geometry.Point) {
			return keys[i], built[i]
		}),
	}
	return j
}

// GeneratePath 获取从指定进口道按指定转向通过路口的路径
// 功能：返回预计算的路径点序列（发车点、停止点、转弯点、离场点）
// 参数：dir-进口道方向，turn-转向
// 返回：路径点序列，调用方不得修改
// 说明：对相同输入总是返回相同路径，不含随机性
func (j *Junction) GeneratePath(dir entity.Direction, turn entity.Turn) []geometry.Point {
	path, ok := j.paths[pathKey{Dir: dir, Turn: turn}]
	if !ok {
		log.Panicf("no path for direction %v turn %v", dir, turn)
	}
	return path
}

// InIntersection 判断包围盒是否与路口区域相交
func (j *Junction) InIntersection(box entity.AABB) bool {
	return j.layout.InIntersection(box)
}

// OnStopLine 判断包围盒是否位于指定进口道的停止线区域
func (j *Junction) OnStopLine(dir entity.Direction, box entity.AABB) bool {
	return j.layout.OnStopLine(dir, box)
}

// ApproachLength 指定进口道从画面边缘到路口区域的长度
func (j *Junction) ApproachLength(dir entity.Direction) float64 {
	return j.layout.ApproachLength(dir)
}

// RightOfWay 当前获得通行权的方向
// 返回：持有绿灯的进口道方向，或全红
func (j *Junction) RightOfWay() entity.Direction {
	return j.light.Current()
}

// Update 更新阶段，推进信号灯状态机
// 参数：t-当前仿真时刻，occ-本帧聚合的占用信号
func (j *Junction) Update(t float64, occ entity.Occupancy) {
	before := j.light.Current()
	j.light.Update(t, occ)
	if after := j.light.Current(); after != before {
		log.Debugf("traffic light: %v -> %v at %.2fs", before, after, t)
	}
}
