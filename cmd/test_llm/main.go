package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/leon37/ExpenseBot/internal/analyzer"
	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/leon37/ExpenseBot/internal/infrastructure/llm"
	"github.com/leon37/ExpenseBot/internal/logger"
)

// 手动冒烟测试：用当前配置的后端跑一遍分析管道
// 用法：go run ./cmd/test_llm ["自定义消息" ...]
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	logger.Setup(os.Stderr, conf.App.LogLevel)

	provider, err := llm.NewProvider(conf)
	if err != nil {
		log.Fatalf("无法初始化 LLM: %v", err)
	}
	a := analyzer.New(provider, conf.App.ExpenseCategories, nil)

	// 测试用例：覆盖快速过滤、正常消费、非消费三种情况
	inputs := []string{
		"Dinner with friends 45",
		"Paid $30 for gas",
		"grocery shopping 85.50",
		"hello there!",
		"thanks 5",
		"my cat is 3 years old",
	}
	if len(os.Args) > 1 {
		inputs = os.Args[1:]
	}

	fmt.Printf("backend: %s, categories: %s\n", provider.Backend(), strings.Join(a.Categories(), ", "))
	for _, input := range inputs {
		fmt.Printf("\n-------- 输入: %s --------\n", input)
		if analyzer.IsNotExpense(input) {
			fmt.Println("快速过滤: 不调用 LLM")
		}

		start := time.Now()
		expense, ok := a.Analyze(context.Background(), input)
		duration := time.Since(start)

		if !ok {
			fmt.Printf("❌ 没有识别出消费 (耗时 %v)\n", duration)
			continue
		}
		fmt.Printf("✅ 识别成功 (耗时 %v)\n", duration)
		fmt.Printf("描述: %s\n", expense.Description)
		fmt.Printf("金额: %s\n", expense.Amount.StringFixed(2))
		fmt.Printf("分类: %s\n", expense.Category)
	}
}
