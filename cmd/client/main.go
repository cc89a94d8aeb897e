package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MJDaws0n/Tetris/internal/logger"
	"github.com/MJDaws0n/Tetris/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3000", "服务器地址")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	logger.LogInfo("连接服务器 %s", serverURL)

	model := ui.NewOnlineModel(serverURL)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("客户端异常退出: %v", err)
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
