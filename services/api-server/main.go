package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/zhikao/datakit/internal/checker"
	"github.com/zhikao/datakit/internal/config"
	"github.com/zhikao/datakit/services/api-server/handlers"
	"github.com/zhikao/datakit/services/api-server/middleware"
)

// Server 数据处理工具的HTTP服务
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
}

func main() {
	// 解析命令行参数
	var configPath string
	if len(os.Args) > 2 && os.Args[1] == "-config" {
		configPath = os.Args[2]
	} else {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	server := NewServer(cfg)
	if err := server.Start(); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}

// NewServer 组装路由和处理器
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.APIServer.Mode)
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	}

	// 参照数据缺失只降级检查功能，不阻止启动
	ref := checker.LoadRefData(cfg.RefData.SchoolFile, cfg.RefData.MajorFile)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.MaxMultipartMemory = cfg.APIServer.MaxUploadSize

	server := &Server{
		config:   cfg,
		router:   router,
		handlers: handlers.NewHandlers(cfg, ref),
	}
	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")

	// 健康检查
	api.GET("/health", s.handlers.Health)
	api.GET("/ready", s.handlers.Ready)

	// 数据比对
	reconcile := api.Group("/reconcile")
	{
		reconcile.POST("/score", s.handlers.ReconcileScore)
		reconcile.POST("/college", s.handlers.ReconcileCollege)
		reconcile.POST("/export", s.handlers.ExportReconcile)
		reconcile.POST("/convert", s.handlers.ConvertUnmatched)
	}

	// 备注检查（异步任务）
	remarks := api.Group("/remarks")
	{
		remarks.POST("/check", s.handlers.CheckRemarks)
	}

	// 任务管理
	tasks := api.Group("/tasks")
	{
		tasks.GET("/:id", s.handlers.GetTask)
		tasks.GET("/:id/progress", s.handlers.TaskProgress)
		tasks.GET("/:id/result", s.handlers.DownloadTaskResult)
	}

	// 院校分提取
	extract := api.Group("/extract")
	{
		extract.POST("/ordinary", s.handlers.ExtractOrdinary)
		extract.POST("/arts", s.handlers.ExtractArts)
	}

	// 一分一段校验
	api.POST("/segmentation/repair", s.handlers.RepairSegmentation)

	// 专业组代码匹配
	api.POST("/groupcode/match", s.handlers.MatchGroupCodes)

	// 就业质量报告PDF
	api.POST("/report/pdf", s.handlers.BuildReportPDF)
}

// Start 启动并等待退出信号，优雅关闭
func (s *Server) Start() error {
	server := &http.Server{
		Addr:         s.config.APIServer.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.APIServer.ReadTimeout,
		WriteTimeout: s.config.APIServer.WriteTimeout,
	}

	go func() {
		log.Printf("API服务器启动在 %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.APIServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器关闭失败: %v", err)
		return err
	}

	log.Println("服务器已关闭")
	return nil
}
