package entity

import (
	"github.com/tsinghua-fib-lab/junction-sim-oss/clock"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	RuntimeConfig() *config.RuntimeConfig
}
