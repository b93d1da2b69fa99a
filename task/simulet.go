package task

import (
	"flag"

	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// turns 随机发车可选的转向及其权重（均匀）
var (
	turns       = [3]entity.Turn{entity.TurnLeft, entity.TurnRight, entity.TurnStraight}
	turnWeights = []float64{1, 1, 1}
)

// prepare 准备阶段，每步执行一次
// 功能：在每个仿真步骤开始时进行准备工作
// 算法说明：
// 1. 更新时钟：步数加一并计算当前时间
// 2. 心跳日志：定期输出系统状态信息
// 3. 车辆管理器准备：刷新进口道队列的排序键
func (ctx *Context) prepare() {
	ctx.clock.InternalStep++
	ctx.clock.T = float64(ctx.clock.InternalStep) * ctx.clock.DT

	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) vehicles: %d light: %v",
			ctx.clock.InternalStep,
			hour, minute, second,
			ctx.vehicleManager.Count(),
			ctx.junction.RightOfWay(),
		)
	}

	ctx.vehicleManager.Prepare()
}

// update 更新阶段，每步执行一次
// 功能：执行一帧仿真的主要逻辑
// 算法说明：
// 1. 随机发车（由配置的概率驱动，外部输入协作方的内置替身）
// 2. 聚合占用信号：等待车辆数、路口内有车、停止线上有车
// 3. 推进信号灯状态机
// 4. 推进车辆：停走决策、位置积分、离场清理
// 说明：严格按此顺序执行，车辆的停走决策读取的是本帧更新后的信号灯状态
func (ctx *Context) update() {
	ctx.spawnRandom()
	occ := ctx.vehicleManager.Occupancy()
	ctx.junction.Update(ctx.clock.T, occ)
	ctx.vehicleManager.Update(ctx.clock.DT)
}

// spawnRandom 随机发车
// 功能：按配置的概率在每个进口道尝试发车，转向均匀随机
// 说明：拥堵或车头间距不足导致的发车失败是正常现象，只记录debug日志
func (ctx *Context) spawnRandom() {
	p := ctx.runtimeConfig.All.Spawn.Probability
	if p <= 0 {
		return
	}
	for _, dir := range entity.Directions {
		if !ctx.generator.PTrue(p) {
			continue
		}
		turn := turns[ctx.generator.DiscreteDistribution(turnWeights)]
		if _, err := ctx.vehicleManager.Spawn(dir, turn); err != nil {
			log.Debugf("random spawn on %v rejected: %v", dir, err)
		}
	}
}

// Step 推进一帧仿真
// 功能：外部驱动循环的步进入口，每个渲染帧调用一次
// 说明：时间戳由时钟按固定步长推进，要求调用是串行的
func (ctx *Context) Step() {
	ctx.prepare()
	ctx.update()
}

// Run 运行
// 功能：以固定步长驱动仿真直到结束步数或收到关闭指令
func (ctx *Context) Run() {
	for {
		ctx.Step()
		if ctx.clock.InternalStep+1 >= ctx.clock.END_STEP || ctx.closed.Load() {
			break
		}
	}
	log.Infof("engine complete")
}
