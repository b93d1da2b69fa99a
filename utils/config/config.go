package config

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，补全默认值后的有效配置
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，进行配置验证和默认值填充
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 未指定的几何、车辆、信号灯参数采用默认值
// 2. 对明显不合法的配置（非正的步长、道路宽于画面）直接panic
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	if config.Control.Step.Interval <= 0 {
		log.Panicf("config: control.step.interval must be positive, got %v", config.Control.Step.Interval)
	}
	if config.Geometry.WindowWidth == 0 {
		config.Geometry.WindowWidth = 800
	}
	if config.Geometry.WindowHeight == 0 {
		config.Geometry.WindowHeight = 600
	}
	if config.Geometry.RoadWidth == 0 {
		config.Geometry.RoadWidth = 100
	}
	if config.Geometry.RoadWidth >= config.Geometry.WindowWidth ||
		config.Geometry.RoadWidth >= config.Geometry.WindowHeight {
		log.Panicf(
			"config: road width %v does not fit into window %vx%v",
			config.Geometry.RoadWidth, config.Geometry.WindowWidth, config.Geometry.WindowHeight,
		)
	}
	if config.Vehicle.Size == 0 {
		config.Vehicle.Size = 20
	}
	if config.Vehicle.SafetyGap == 0 {
		config.Vehicle.SafetyGap = 10
	}
	if config.Vehicle.Speed == 0 {
		config.Vehicle.Speed = 100
	}
	if config.Vehicle.SnapThreshold == 0 {
		config.Vehicle.SnapThreshold = 5
	}
	if config.TrafficLight.MaxPhaseSeconds == 0 {
		config.TrafficLight.MaxPhaseSeconds = 5
	}
	if config.TrafficLight.NoTrafficGraceMS == 0 {
		config.TrafficLight.NoTrafficGraceMS = 500
	}

	rc.All = config
	rc.C = config.Control

	return rc
}
