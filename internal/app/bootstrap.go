package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// 窗口默认值：与最早的命令行版本保持一致。
const (
	DefaultTitle    = "Vega View"
	DefaultWidth    = 1000
	DefaultHeight   = 800
	DefaultLogLevel = "info"
)

// 构建信息，发布时通过 -ldflags "-X vega-view/internal/app.Version=..." 注入。
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Config 是一次启动的全部输入。
// 在窗口创建之前构造完成，之后只读（按值传递，不做任何修改）。
// Title/Width/Height 用指针区分“未设置”和“显式设置为零值”。
// spec 不做任何校验（包括空白），原样交给渲染引擎。
type Config struct {
	Spec     string  `yaml:"-"`
	PagePath string  `yaml:"page"`
	DataPath string  `yaml:"data"`
	Title    *string `yaml:"title"`
	Width    *uint32 `yaml:"width"`
	Height   *uint32 `yaml:"height"`
	DevTools bool    `yaml:"devtools"`
	LogLevel string  `yaml:"log_level"`
}

// DefaultConfig 返回未设置任何参数时的配置（spec 为空，需要调用方补上）。
func DefaultConfig() Config {
	return Config{
		DevTools: true,
		LogLevel: DefaultLogLevel,
	}
}

// LoadFile 读取 YAML 配置文件，在 DefaultConfig 的基础上覆盖。
// 未知字段直接报错，避免拼写错误被静默忽略。
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	// 空文件：Decode 返回 io.EOF，按“全部使用默认值”处理。
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WindowTitle 返回窗口标题，未设置时使用默认值（显式传入空字符串则保持为空）。
func (c Config) WindowTitle() string {
	if c.Title == nil {
		return DefaultTitle
	}
	return *c.Title
}

// WindowSize 返回窗口尺寸。只有未设置才回落到默认值，显式的 0 原样传给窗口。
func (c Config) WindowSize() (width, height int) {
	width, height = DefaultWidth, DefaultHeight
	if c.Width != nil {
		width = int(*c.Width)
	}
	if c.Height != nil {
		height = int(*c.Height)
	}
	return width, height
}
