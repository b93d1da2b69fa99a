package task

import (
	"fmt"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/junction-sim-oss/clock"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/randengine"
)

const (
	SelfName = "junction" // 本程序的名字，用于日志标识
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代全局变量
// 说明：World的唯一拥有者，所有状态读写都发生在单线程的步进调用内；
// 外部（渲染、输入）只能通过只读查询和发车入口与其交互
type Context struct {
	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// 路口（布局+信号灯）
	junction *junction.Junction
	// 车辆管理器
	vehicleManager *vehicle.Manager

	// 随机发车引擎
	generator *randengine.Engine

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件和配置
// 参数：job-任务名称，c-配置对象，seed-随机发车种子
// 返回：初始化完成的Context实例
// 说明：初始状态为北向绿灯、空车辆集合、车辆ID计数器为0
func NewContext(job string, c config.Config, seed uint64) *Context {
	ctx := &Context{
		job: job,
	}
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(ctx.runtimeConfig.C.Step)
	ctx.generator = randengine.New(seed)
	ctx.junction = junction.New(ctx)
	ctx.vehicleManager = vehicle.NewManager(ctx, ctx.junction)
	return ctx
}

// Clock 获取时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// RuntimeConfig 获取运行时配置
func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// SpawnVehicle 发车入口
// 功能：响应外部输入（按键或随机发生器），在指定进口道生成车辆
// 参数：dir-进口道方向，turn-转向
// 返回：分配的车辆ID和错误信息
// 说明：参数不在封闭集合内时返回错误且不改变任何状态
func (ctx *Context) SpawnVehicle(dir entity.Direction, turn entity.Turn) (int32, error) {
	id, err := ctx.vehicleManager.Spawn(dir, turn)
	if err != nil {
		return 0, fmt.Errorf("spawn vehicle: %w", err)
	}
	return id, nil
}

// Vehicles 存活车辆列表（发车顺序）
// 说明：供渲染协作方只读使用
func (ctx *Context) Vehicles() []*vehicle.Vehicle {
	return ctx.vehicleManager.Vehicles()
}

// FindVehicles 按ID查找车辆
// 返回：命中的车辆列表和未命中的ID列表
func (ctx *Context) FindVehicles(ids []int32) ([]*vehicle.Vehicle, []int32) {
	return ctx.vehicleManager.Find(ids)
}

// LightDirection 当前获得通行权的方向
// 说明：供渲染协作方绘制各进口道的灯色
func (ctx *Context) LightDirection() entity.Direction {
	return ctx.junction.RightOfWay()
}

// Close 请求结束仿真
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
