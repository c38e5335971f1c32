package viewer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vega-view/internal/services/scheme"
)

const defaultListenAddr = "127.0.0.1:0"

// Window 是原生窗口 + 内嵌 web view 的最小抽象。
// 除 Dispatch 外，所有方法都必须在主线程（事件循环所在线程）调用。
type Window interface {
	SetTitle(title string)
	SetSize(width, height int)
	Init(js string)
	Navigate(url string)
	Run()
	Dispatch(f func())
	Terminate()
	Destroy()
}

// ErrNoNativeWindow 表示窗口对象创建了，但底层原生窗口不存在（无显示环境、缺少 WebKit/WebView2 等）。
var ErrNoNativeWindow = errors.New("native window unavailable")

// nativeHandle 由暴露原生句柄的窗口实现（webview_go 的 Window()）；句柄为 nil 即创建失败。
type nativeHandle interface {
	Window() unsafe.Pointer
}

// WindowFactory 创建窗口；devTools 控制是否开启开发者工具。
type WindowFactory func(devTools bool) (Window, error)

// Options 定义窗口与内置资源服务的启动参数。
type Options struct {
	Title    string
	Width    int
	Height   int
	DevTools bool

	// Handler 负责 view:// 下的全部请求。
	Handler http.Handler
	// ListenAddr 默认 127.0.0.1:0（仅回环、随机端口）。
	ListenAddr string

	NewWindow WindowFactory
	Log       zerolog.Logger
}

// Run 启动内置资源服务，创建窗口并导航到入口页，阻塞直到窗口关闭。
//
// Go 的 web view 绑定不支持注册自定义 scheme，所以 view:// 落地为一个只监听回环地址的
// 进程内 origin：view://local/page 对应 http://127.0.0.1:<port>/page，路由逻辑完全相同。
//
// 说明：
// - 服务先于导航启动，保证页面加载时 handler 已就绪
// - 回环端口只接受本窗口的请求（见 sessionGuard）
// - ctx 取消时请求窗口退出（Ctrl+C）
// - 窗口关闭后关闭服务并返回 nil
func Run(ctx context.Context, opts Options) error {
	if opts.Handler == nil {
		return errors.New("viewer: handler is nil")
	}
	if opts.NewWindow == nil {
		return errors.New("viewer: window factory is nil")
	}
	if opts.ListenAddr == "" {
		opts.ListenAddr = defaultListenAddr
	}
	log := opts.Log.With().Str("component", "viewer").Logger()

	ln, err := net.Listen("tcp", opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.ListenAddr, err)
	}

	origin := "http://" + ln.Addr().String()
	token := uuid.NewString()
	rootURL := RootURL(origin, token)

	httpServer := &http.Server{
		Handler: &sessionGuard{
			host:  ln.Addr().String(),
			token: token,
			next:  opts.Handler,
		},
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErrCh := make(chan error, 1)
	go func() {
		err := httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("asset server stopped")
			serveErrCh <- err
		}
		close(serveErrCh)
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	w, err := opts.NewWindow(opts.DevTools)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	if w == nil {
		return fmt.Errorf("create window: %w", ErrNoNativeWindow)
	}
	if h, ok := w.(nativeHandle); ok && h.Window() == nil {
		return fmt.Errorf("create window: %w", ErrNoNativeWindow)
	}
	defer w.Destroy()

	w.SetTitle(opts.Title)
	w.SetSize(opts.Width, opts.Height)
	w.Init(originGuard(origin, rootURL))
	w.Navigate(rootURL)

	// closed 在 Run 返回后置位；之后不允许再向窗口投递 Dispatch（窗口即将 Destroy）。
	var (
		mu     sync.Mutex
		closed bool
	)
	stop := context.AfterFunc(ctx, func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		log.Info().Msg("interrupted, closing window")
		w.Dispatch(w.Terminate)
	})
	defer stop()

	log.Info().
		Str("scheme", scheme.BaseURL).
		Str("url", origin+scheme.RootPath).
		Str("title", opts.Title).
		Int("width", opts.Width).
		Int("height", opts.Height).
		Bool("devtools", opts.DevTools).
		Msg("window open")

	w.Run()

	mu.Lock()
	closed = true
	mu.Unlock()
	stop()

	log.Info().Msg("window closed")
	select {
	case err := <-serveErrCh:
		if err != nil {
			return fmt.Errorf("asset server: %w", err)
		}
	default:
	}
	return nil
}

// RootURL 返回 view://local/page 在给定 origin 下的实际地址，附带本次启动的会话 token。
func RootURL(origin, token string) string {
	return origin + scheme.RootPath + "?" + tokenParam + "=" + url.QueryEscape(token)
}

// originGuard 生成注入脚本：页面一旦跳出本地 origin，就拉回入口页。
func originGuard(origin, rootURL string) string {
	return fmt.Sprintf("if(location.origin !== %q)location.href=%q", origin, rootURL)
}
