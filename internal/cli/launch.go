package cli

import (
	"context"
	"io"

	"vega-view/internal/app"
	"vega-view/internal/platform/logging"
	"vega-view/internal/services/assets"
	"vega-view/internal/services/scheme"
	"vega-view/internal/services/viewer"
)

// Launcher 把配置装配成 资源层 -> scheme handler -> 窗口，并阻塞到窗口关闭。
type Launcher struct {
	NewWindow viewer.WindowFactory
	Stdin     io.Reader // 未指定 --data 时的数据来源
	Stderr    io.Writer // 日志输出
}

// Launch 满足 LaunchFunc。
func (l Launcher) Launch(ctx context.Context, cfg app.Config) error {
	log := logging.Auto(l.Stderr, cfg.LogLevel)

	provider := assets.NewProvider(cfg, l.Stdin)
	handler := scheme.NewHandler(provider, log)

	width, height := cfg.WindowSize()
	return viewer.Run(ctx, viewer.Options{
		Title:     cfg.WindowTitle(),
		Width:     width,
		Height:    height,
		DevTools:  cfg.DevTools,
		Handler:   handler,
		NewWindow: l.NewWindow,
		Log:       log,
	})
}
