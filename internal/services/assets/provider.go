package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"vega-view/internal/app"
)

// DefaultPage 是未指定 --page 时返回的页面：从 CDN 加载 Vega 运行时，再通过 /spec 拉取图表定义。
//
//go:embed default_page.html
var DefaultPage []byte

const (
	MIMEHTML = "text/html"
	MIMEJSON = "application/json"
)

// Name 是三种逻辑资源的名字。
type Name string

const (
	Page Name = "page"
	Spec Name = "spec"
	Data Name = "data"
)

// ErrUnknownResource 表示请求了 page/spec/data 之外的资源。
var ErrUnknownResource = errors.New("unknown resource")

// Asset 是一次资源解析的结果。
type Asset struct {
	Body        []byte
	ContentType string
}

// Provider 把逻辑资源名解析为字节内容。
//
// 规则：
// - page：优先读 --page 指定的文件，否则返回内置页面
// - spec：原样返回命令行传入的 spec，不做 JSON 校验
// - data：优先读 --data 指定的文件，否则读取 stdin（只读一次，结果缓存）
type Provider struct {
	cfg   app.Config
	stdin io.Reader

	stdinOnce sync.Once
	stdinBody []byte
	stdinErr  error
}

// NewProvider 创建 Provider。stdin 一般传 os.Stdin；cfg 在之后不会被修改。
func NewProvider(cfg app.Config, stdin io.Reader) *Provider {
	return &Provider{cfg: cfg, stdin: stdin}
}

// Resolve 按名字分派到具体资源。
func (p *Provider) Resolve(name Name) (Asset, error) {
	switch name {
	case Page:
		return p.Page()
	case Spec:
		return p.Spec()
	case Data:
		return p.Data()
	default:
		return Asset{}, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
}

// Page 返回入口页：--page 指定的文件，或内置页面。
func (p *Provider) Page() (Asset, error) {
	if p.cfg.PagePath == "" {
		return Asset{Body: DefaultPage, ContentType: MIMEHTML}, nil
	}
	body, err := os.ReadFile(p.cfg.PagePath)
	if err != nil {
		return Asset{}, fmt.Errorf("read page file %s: %w", p.cfg.PagePath, err)
	}
	return Asset{Body: body, ContentType: MIMEHTML}, nil
}

// Spec 原样返回 spec 字符串。
func (p *Provider) Spec() (Asset, error) {
	return Asset{Body: []byte(p.cfg.Spec), ContentType: MIMEJSON}, nil
}

// Data 返回待可视化的数据。
// 文件每次都重新读取；stdin 不可重读，首次读完后缓存，后续请求直接返回缓存内容。
func (p *Provider) Data() (Asset, error) {
	if p.cfg.DataPath != "" {
		body, err := os.ReadFile(p.cfg.DataPath)
		if err != nil {
			return Asset{}, fmt.Errorf("read data file %s: %w", p.cfg.DataPath, err)
		}
		return Asset{Body: body, ContentType: MIMEJSON}, nil
	}

	p.stdinOnce.Do(func() {
		if p.stdin == nil {
			p.stdinBody = []byte{}
			return
		}
		p.stdinBody, p.stdinErr = io.ReadAll(p.stdin)
		if p.stdinErr != nil {
			p.stdinErr = fmt.Errorf("read stdin: %w", p.stdinErr)
		}
	})
	if p.stdinErr != nil {
		return Asset{}, p.stdinErr
	}
	return Asset{Body: p.stdinBody, ContentType: MIMEJSON}, nil
}
