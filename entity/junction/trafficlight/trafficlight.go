// 提供按需响应的单点信号灯控制算法
// 按北→南→东→西的固定顺序轮转放行，相位时长有上限，
// 无车等待超过宽限期时提前让出绿灯，切换前用全红相位清空路口
package trafficlight

import (
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

// 自适应相位时长调整量（秒），参照基准时长
const (
	congestedBonus = 5 // 进口道拥堵时的延长量
	longQueueBonus = 2 // 排队超过longQueueCount时的延长量
	idlePenalty    = 1 // 无车等待时的缩短量
	minPhase       = 1 // 相位时长下限
	longQueueCount = 5 // 触发延长的排队车辆数
)

// tlRuntime 信号灯运行时数据结构
// 功能：存储信号灯状态机的全部可变状态
type tlRuntime struct {
	current          entity.Direction // 当前放行方向（可能为全红）
	lastGreen        entity.Direction // 最近一次持有绿灯的进口道方向（永不为全红）
	lastSwitchT      float64          // 最近一次状态切换时刻
	lastWaitingSeenT float64          // 最近一次观测到等待车辆的时刻
	phaseMax         float64          // 当前绿灯相位时长上限
}

// Controller 单点信号灯控制器
// 功能：实现基于占用信号的状态机，决定哪个进口道获得通行权
// 说明：时间由调用方注入，内部不读取墙上时钟，便于确定性测试；
// 状态为{北,南,东,西,全红}，初始为北，无终止状态
type Controller struct {
	basePhase float64 // 基准相位时长上限（秒）
	grace     float64 // 无车等待宽限期（秒）
	adaptive  bool    // 自适应相位时长开关

	runtime tlRuntime // 运行时数据
}

// New 创建信号灯控制器
// 功能：初始化控制器，北进口道先行
// 参数：cfg-信号灯配置，now-当前仿真时刻
// 返回：初始化完成的控制器实例
func New(cfg config.TrafficLight, now float64) *Controller {
	return &Controller{
		basePhase: cfg.MaxPhaseSeconds,
		grace:     cfg.NoTrafficGraceMS / 1000,
		adaptive:  cfg.Adaptive,
		runtime: tlRuntime{
			current:          entity.DirectionNorth,
			lastGreen:        entity.DirectionNorth,
			lastSwitchT:      now,
			lastWaitingSeenT: now,
			phaseMax:         cfg.MaxPhaseSeconds,
		},
	}
}

// Current 当前放行方向
// 返回：持有绿灯的进口道方向，或全红
func (c *Controller) Current() entity.Direction {
	return c.runtime.current
}

// LastGreen 最近一次持有绿灯的进口道方向
func (c *Controller) LastGreen() entity.Direction {
	return c.runtime.lastGreen
}

// PhaseElapsed 当前相位已持续的时长
func (c *Controller) PhaseElapsed(t float64) float64 {
	return t - c.runtime.lastSwitchT
}

// Update 更新阶段，执行状态机的核心逻辑
// 功能：根据占用信号推进信号灯状态
// 参数：t-当前仿真时刻（要求单调不减），occ-本帧聚合的占用信号
// 算法说明：
//  1. 全红状态：路口清空后切换到lastGreen轮转顺序的下一个方向，否则保持全红
//  2. 绿灯状态：相位超时或无车等待超过宽限期时触发切换；
//     若路口内或停止线上有车，先进入全红清空（全红本身不限时长），
//     否则直接切换到下一个方向
//
// 说明：全红兜底保证切换绿灯前路口必为空（安全）；无车提前让行提高通行效率；
// 相位时长上限保证任一方向的最坏等待有界（公平）
func (c *Controller) Update(t float64, occ entity.Occupancy) {
	r := &c.runtime
	if r.current == entity.DirectionAllRed {
		if !occ.CarsInIntersection {
			c.grant(r.lastGreen.Next(), t, occ)
		}
		return
	}

	if occ.WaitingOnGreen > 0 {
		r.lastWaitingSeenT = t
	}
	shouldSwitch := t-r.lastSwitchT >= r.phaseMax ||
		(occ.WaitingOnGreen == 0 && t-r.lastWaitingSeenT >= c.grace)
	if !shouldSwitch {
		return
	}
	if occ.CarsInIntersection || occ.VehiclesOnStopLine {
		r.current = entity.DirectionAllRed
		r.lastSwitchT = t
		return
	}
	// 路口已空，跳过全红直接切换
	c.grant(r.current.Next(), t, occ)
}

// grant 将通行权授予指定进口道
// 参数：dir-新的绿灯方向，t-当前时刻，occ-切换时刻的占用信号
func (c *Controller) grant(dir entity.Direction, t float64, occ entity.Occupancy) {
	r := &c.runtime
	r.current = dir
	r.lastGreen = dir
	r.lastSwitchT = t
	r.lastWaitingSeenT = t
	r.phaseMax = c.nextPhaseMax(occ)
}

// nextPhaseMax 计算下一个绿灯相位的时长上限
// 参数：occ-切换时刻的占用信号
// 算法说明：自适应关闭时恒为基准时长；开启时按切换时刻的排队情况调整：
// 拥堵延长congestedBonus，排队超过longQueueCount延长longQueueBonus，
// 无车缩短idlePenalty（不低于minPhase）
func (c *Controller) nextPhaseMax(occ entity.Occupancy) float64 {
	if !c.adaptive {
		return c.basePhase
	}
	switch {
	case occ.CongestedOnGreen:
		return c.basePhase + congestedBonus
	case occ.WaitingOnGreen > longQueueCount:
		return c.basePhase + longQueueBonus
	case occ.WaitingOnGreen == 0:
		return max(c.basePhase-idlePenalty, minPhase)
	default:
		return c.basePhase
	}
}
