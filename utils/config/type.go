package config

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：控制仿真的时间范围、步长和精度
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Geometry 路口几何配置
// 功能：定义画面尺寸与道路宽度，路口布局（车道中心线、路口区域、停止线）均由此推导
// 说明：这些是可调的几何常数而非不变量，取值需保证路口清空的安全不变量可满足
type Geometry struct {
	WindowWidth  float64 `yaml:"window_width"`  // 画面宽度
	WindowHeight float64 `yaml:"window_height"` // 画面高度
	RoadWidth    float64 `yaml:"road_width"`    // 道路总宽度（双向）
}

// Vehicle 车辆配置
type Vehicle struct {
	Size          float64 `yaml:"size"`           // 车辆包围盒边长
	SafetyGap     float64 `yaml:"safety_gap"`     // 车辆间安全间距
	Speed         float64 `yaml:"speed"`          // 行驶速度（单位/秒）
	SnapThreshold float64 `yaml:"snap_threshold"` // 到达路径点的吸附距离
}

// TrafficLight 信号灯配置
// 说明：adaptive开启后每次进入绿灯相位时按排队情况调整本相位时长上限
type TrafficLight struct {
	MaxPhaseSeconds  float64 `yaml:"max_phase_seconds"`   // 绿灯相位时长上限（秒）
	NoTrafficGraceMS float64 `yaml:"no_traffic_grace_ms"` // 无车等待宽限期（毫秒）
	Adaptive         bool    `yaml:"adaptive,omitempty"`  // 自适应相位时长开关
}

// Spawn 随机发车配置
type Spawn struct {
	Probability float64 `yaml:"probability"` // 每步每个进口道的发车概率
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control      Control      `yaml:"control"`       // 模拟过程控制
	Geometry     Geometry     `yaml:"geometry"`      // 路口几何
	Vehicle      Vehicle      `yaml:"vehicle"`       // 车辆参数
	TrafficLight TrafficLight `yaml:"traffic_light"` // 信号灯参数
	Spawn        Spawn        `yaml:"spawn"`         // 随机发车
}
