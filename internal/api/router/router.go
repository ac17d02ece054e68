package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hris/backend/config"
	"hris/backend/internal/api/handler"
	"hris/backend/internal/api/middleware"
	"hris/backend/pkg/jwt"
	"hris/backend/pkg/redis"
)

// 非上传接口的请求体上限
const defaultBodyLimit = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：限流与黑名单检查降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
	{
		v1.GET("/employees", middleware.BodyLimit(defaultBodyLimit), h.Employee.ListEmployees)

		// 排班计划模块：查询对所有已认证用户开放，模板/导出/上传限 admin、hr
		plans := v1.Group("/shift-plans")
		{
			plans.GET("", middleware.BodyLimit(defaultBodyLimit), h.ShiftPlan.ListMonthlyShifts)
			plans.GET("/template", middleware.RoleAuth("admin", "hr"), h.ShiftPlan.DownloadTemplate)
			plans.GET("/export", middleware.RoleAuth("admin", "hr"), h.ShiftPlan.ExportShiftPlan)
			plans.POST("/upload",
				middleware.RoleAuth("admin", "hr"),
				middleware.RateLimit(rdb, cfg.ShiftPlan.UploadRateLimit, cfg.ShiftPlan.UploadRateWindow),
				middleware.BodyLimit(cfg.ShiftPlan.MaxUploadBytes()),
				h.ShiftPlan.UploadShiftPlan,
			)
		}
	}

	return r
}
