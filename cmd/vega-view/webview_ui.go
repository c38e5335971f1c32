//go:build cgo

package main

import (
	"errors"

	webview "github.com/webview/webview_go"

	"vega-view/internal/services/viewer"
)

// webviewWindow 把 webview_go 适配为 viewer.Window。
// 窗口自带标准装饰；HintNone 表示用户可以自由调整大小。
type webviewWindow struct {
	webview.WebView
}

func (w webviewWindow) SetSize(width, height int) {
	w.WebView.SetSize(width, height, webview.HintNone)
}

// newWebViewWindow 创建原生窗口 + 内嵌 WebView（依赖系统 WebKit/WebView2，需要 CGO）。
// webview.New 在创建失败时也返回非 nil 对象，原生句柄为 nil；
// viewer.Run 通过 Window() 检查句柄并以错误退出。
func newWebViewWindow(devTools bool) (viewer.Window, error) {
	w := webview.New(devTools)
	if w == nil {
		return nil, errors.New("webview: failed to create window")
	}
	return webviewWindow{WebView: w}, nil
}
