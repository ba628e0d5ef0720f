package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CoolBanHub/minghe/agent"
	"github.com/CoolBanHub/minghe/metrics"
	"github.com/CoolBanHub/minghe/utils"
	"github.com/spf13/cobra"
)

const (
	defaultUserID = "user1"
	divider       = "=================================================="
	thinDivider   = "--------------------------------------------------"
)

var quitCommands = map[string]bool{"quit": true, "退出": true, "q": true}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	app, err := newAgent(ctx, cfg, metrics.New())
	if err != nil {
		return err
	}
	return repl(ctx, app, os.Stdin, os.Stdout)
}

// repl 一次运行使用同一个会话
func repl(ctx context.Context, app *agent.Agent, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, "明禾陪伴 - 心理资讯大师")
	fmt.Fprintln(out, divider)
	fmt.Fprintln(out, "输入 'quit' 或 '退出' 结束对话")
	fmt.Fprintln(out, thinDivider)

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "请输入用户名: ")
	userID := defaultUserID
	if scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			userID = name
		}
	}
	sessionID := utils.NewSessionID()

	for {
		fmt.Fprint(out, "\n你: ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if quitCommands[message] {
			fmt.Fprintln(out, "再见！祝你一切安好。")
			return nil
		}
		if message == "" {
			continue
		}

		resp, err := app.Chat(ctx, userID, sessionID, message)
		if err != nil {
			fmt.Fprintf(out, "错误: %s\n", err)
			continue
		}
		fmt.Fprintf(out, "\n明禾: %s\n", resp.Content)
		fmt.Fprintf(out, "[意图: %s | 风险: %s]\n", resp.Intent, resp.RiskLevel)
	}
	return scanner.Err()
}
