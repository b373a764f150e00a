package logger

import (
	"go.uber.org/zap"
)

// Log 全局日志器，Init 之前是 no-op，方便测试直接使用
var Log = zap.NewNop().Sugar()

// Init 初始化生产环境日志器
func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
