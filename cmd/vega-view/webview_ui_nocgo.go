//go:build !cgo

package main

import (
	"errors"

	"vega-view/internal/services/viewer"
)

func newWebViewWindow(bool) (viewer.Window, error) {
	return nil, errors.New("webview: this build has no window support (rebuild with CGO_ENABLED=1)")
}
