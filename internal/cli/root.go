package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vega-view/internal/app"
)

// LaunchFunc 接收解析完成的配置并打开窗口；参数错误时不会被调用。
type LaunchFunc func(ctx context.Context, cfg app.Config) error

// NewRootCommand 构造命令行入口：
//
//	vega-view <spec> [--page <path>] [--data <path>] [--title <string>]
//	          [--width <u32>] [--height <u32>]
//
// 优先级：显式传入的参数 > --config 文件 > 内置默认值。
func NewRootCommand(launch LaunchFunc) *cobra.Command {
	var (
		configPath string
		page       string
		data       string
		title      string
		width      uint32
		height     uint32
		devTools   bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "vega-view <spec>",
		Short: "Display a web view, usually for Vega visualizations",
		Long: `Display a Vega-Lite visualization in a native window.

The spec is passed inline as JSON. Data comes from --data, or from stdin
when --data is omitted. Inside the page, the spec is served at /spec and
the data at /data.`,
		Example: `  echo '[{"x":1,"y":2}]' | vega-view '{"data":{"url":"/data"},"mark":"point","encoding":{"x":{"field":"x"},"y":{"field":"y"}}}'
  vega-view "$(cat chart.vl.json)" --data sales.json --title Sales --width 640 --height 480`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		Version:       app.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig()
			if configPath != "" {
				loaded, err := app.LoadFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("page") {
				cfg.PagePath = page
			}
			if flags.Changed("data") {
				cfg.DataPath = data
			}
			if flags.Changed("title") {
				cfg.Title = &title
			}
			if flags.Changed("width") {
				cfg.Width = &width
			}
			if flags.Changed("height") {
				cfg.Height = &height
			}
			if flags.Changed("devtools") {
				cfg.DevTools = devTools
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			cfg.Spec = args[0]

			// 到这里参数已经没有问题，后续错误不再打印 usage。
			cmd.SilenceUsage = true
			return launch(cmd.Context(), cfg)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("vega-view {{.Version}} (commit %s, built %s)\n", app.Commit, app.BuildTime))

	f := cmd.Flags()
	f.StringVar(&page, "page", "", "file containing a HTML template for the page")
	f.StringVar(&data, "data", "", "file containing data to visualize (default is stdin)")
	f.StringVar(&title, "title", "", `the window title (default "`+app.DefaultTitle+`")`)
	f.Uint32Var(&width, "width", 0, fmt.Sprintf("the window width (default %d)", app.DefaultWidth))
	f.Uint32Var(&height, "height", 0, fmt.Sprintf("the window height (default %d)", app.DefaultHeight))
	f.StringVar(&configPath, "config", "", "YAML file with default options")
	f.BoolVar(&devTools, "devtools", true, "enable web view developer tools")
	f.StringVar(&logLevel, "log-level", app.DefaultLogLevel, "log level: debug|info|warn|error")

	return cmd
}
