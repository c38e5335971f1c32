package viewer

import (
	"crypto/subtle"
	"net/http"
	"strconv"
)

const (
	sessionCookie = "vega_view_session"
	tokenParam    = "token"
	bodyForbidden = "Forbidden"
)

// sessionGuard 限制回环端口只服务本进程打开的 web view：
// - Host 必须等于监听地址（挡住 DNS rebinding）
// - 入口页 URL 携带一次性 token，命中后写入 cookie；后续 /spec、/data 只认 cookie
//
// 同机其它进程拿不到 token，也就读不到 /data。
type sessionGuard struct {
	host  string
	token string
	next  http.Handler
}

func (g *sessionGuard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Host != g.host {
		forbid(w)
		return
	}

	if g.matches(r.URL.Query().Get(tokenParam)) {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    g.token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		g.next.ServeHTTP(w, r)
		return
	}

	c, err := r.Cookie(sessionCookie)
	if err != nil || !g.matches(c.Value) {
		forbid(w)
		return
	}
	g.next.ServeHTTP(w, r)
}

func (g *sessionGuard) matches(v string) bool {
	return v != "" && subtle.ConstantTimeCompare([]byte(v), []byte(g.token)) == 1
}

func forbid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(bodyForbidden)))
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(bodyForbidden))
}
