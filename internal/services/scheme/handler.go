package scheme

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"vega-view/internal/platform/hash"
	"vega-view/internal/services/assets"
)

// 自定义 scheme 的名字与入口地址。内置页面按绝对路径引用 /spec、/data，
// 因此这里的取值必须保持稳定。
const (
	Name     = "view"
	BaseURL  = "view://local/page"
	RootPath = "/page"
)

const (
	bodyNotFound    = "Not found"
	bodyWrongMethod = "Wrong method"
	bodyInternal    = "Internal error"
)

// Resolver 是 Handler 对资源层的最小依赖。
type Resolver interface {
	Resolve(name assets.Name) (assets.Asset, error)
}

// Handler 把 view:// 下的请求路由到 Resolver。
// 只看 path，不解析 host；只接受 GET。
type Handler struct {
	res   Resolver
	log   zerolog.Logger
	fatal func(error)
	mux   chi.Router
}

// Option 调整 Handler 的行为。
type Option func(*Handler)

// WithFatal 替换资源读取失败时的处理方式（默认记录日志后退出进程）。
func WithFatal(fn func(error)) Option {
	return func(h *Handler) {
		h.fatal = fn
	}
}

// NewHandler 创建 handler：/page、/spec、/data 三条 GET 路由，其余 404，非 GET 一律 405。
func NewHandler(res Resolver, log zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		res: res,
		log: log.With().Str("component", "scheme").Logger(),
	}
	h.fatal = func(err error) {
		// 页面/数据读不到时窗口没有任何意义，直接终止进程。
		// 用 WithLevel 而不是 Fatal()：日志被关闭时 Fatal() 不会退出。
		h.log.WithLevel(zerolog.FatalLevel).Err(err).Msg("asset load failed")
		os.Exit(1)
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	// 方法检查必须在路由之前：非 GET 请求到任何路径（包括未知路径）都返回 405。
	r.Use(getOnly)

	r.Get("/page", h.serveAsset(assets.Page))
	r.Get("/spec", h.serveAsset(assets.Spec))
	r.Get("/data", h.serveAsset(assets.Data))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writePlain(w, http.StatusNotFound, bodyNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writePlain(w, http.StatusMethodNotAllowed, bodyWrongMethod)
	})

	h.mux = r
	return h
}

// ServeHTTP 实现 http.Handler。
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveAsset(name assets.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asset, err := h.res.Resolve(name)
		if err != nil {
			h.log.Error().Err(err).Str("asset", string(name)).Msg("resolve asset")
			h.fatal(err)
			// 只有替换过 fatal（测试）才会走到这里。
			writePlain(w, http.StatusInternalServerError, bodyInternal)
			return
		}

		h.log.Debug().
			Str("asset", string(name)).
			Int("bytes", len(asset.Body)).
			Str("sha256", hash.Short(asset.Body)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("serve asset")

		w.Header().Set("Content-Type", asset.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(asset.Body)))
		// stdin 数据只能读一次，不希望 web view 自作主张做条件请求或缓存。
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(asset.Body)
	}
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writePlain(w, http.StatusMethodNotAllowed, bodyWrongMethod)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ev := h.log.Debug()
		if ww.Status() >= http.StatusBadRequest {
			ev = h.log.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
