package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"vega-view/internal/cli"
)

// 窗口工具包要求事件循环运行在进程主线程上。
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	// Ctrl+C：让窗口走正常关闭流程，释放端口。
	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	launcher := cli.Launcher{
		NewWindow: newWebViewWindow,
		Stdin:     os.Stdin,
		Stderr:    os.Stderr,
	}
	cmd := cli.NewRootCommand(launcher.Launch)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(sigCtx)
}
