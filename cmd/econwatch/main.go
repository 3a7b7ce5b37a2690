package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"econwatch/internal/analyzer"
	"econwatch/internal/config"
	"econwatch/internal/exporter"
	"econwatch/internal/parser"
	"econwatch/internal/report"
	"econwatch/internal/server"
)

var (
	serve     = flag.Bool("serve", false, "以 API 服务模式运行")
	port      = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode   = flag.Bool("dev", false, "开发模式")
	dataDir   = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	topN      = flag.Int("top", 0, "每个系统性清单的行数 (覆盖配置文件)")
	exportXLS = flag.Bool("export", false, "分析后同时导出 Excel 工作簿")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *topN > 0 {
		cfg.Report.TopN = *topN
	}

	if *serve {
		runServer(cfg)
		return
	}

	os.Exit(runAnalyze(cfg, flag.Arg(0)))
}

// runAnalyze CLI 模式：分析一份快照并把报告打到 stdout
// 不带路径参数时按模拟端导出约定自动找最新 dump。
func runAnalyze(cfg *config.AppConfig, dumpArg string) int {
	dumpPath := dumpArg
	if dumpPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		latest, ok := parser.DiscoverLatestDump(cwd)
		if !ok {
			fmt.Println("error: no dump files found. pass a path explicitly.")
			return 1
		}
		dumpPath = latest
	}

	dump, err := parser.LoadDump(dumpPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}

	r := analyzer.BuildReport(dump, dumpPath)
	fmt.Print(report.Render(r, report.Options{TopN: cfg.Report.TopN}))

	if *exportXLS {
		dir, err := config.EnsureDataDir(cfg)
		if err != nil {
			fmt.Printf("error: 创建数据目录失败: %v\n", err)
			return 1
		}
		exportDir := filepath.Join(dir, "exports")
		path, err := exporter.NewExporter().ExportToFile(r, exportDir, r.SimDay)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return 1
		}
		fmt.Printf("导出: %s\n", path)
	}

	return 0
}

// runServer 服务模式：常驻 API 进程
func runServer(cfg *config.AppConfig) {
	fmt.Println("==========================================")
	fmt.Println("  econwatch - 经济快照瓶颈分析工具")
	fmt.Println("==========================================")

	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("创建数据目录失败: %v", err)
	} else {
		fmt.Printf("数据目录: %s\n", dir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	fmt.Printf("API 入口: %s/api/status\n", url)
	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	if err := srv.Close(); err != nil {
		log.Printf("退出前释放资源失败: %v", err)
	}
}
