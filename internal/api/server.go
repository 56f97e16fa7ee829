package api

import (
	"context"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/silendas/pharmacy-backoffice/docs"
	v1 "github.com/silendas/pharmacy-backoffice/internal/api/handler/v1"
	"github.com/silendas/pharmacy-backoffice/internal/api/middleware"
	"github.com/silendas/pharmacy-backoffice/internal/cache"
	"github.com/silendas/pharmacy-backoffice/internal/config"
	"github.com/silendas/pharmacy-backoffice/internal/repository"
	"github.com/silendas/pharmacy-backoffice/internal/repository/dao"
	"github.com/silendas/pharmacy-backoffice/internal/service"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer wires the whole service. redisClient may be nil, in which
// case the catalog runs without a snapshot cache.
func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	client := upstream.NewClient(conf.Upstream)

	var snapshotCache cache.SnapshotCache
	if redisClient != nil {
		snapshotCache = cache.NewRedisCache(redisClient, time.Duration(conf.Redis.SnapshotTTLSeconds)*time.Second)
	}

	authSvc := s.initAuthService(db, client)
	cartSvc := service.NewCartService()
	catalogSvc := service.NewCatalogService(client, snapshotCache)
	checkoutSvc := service.NewCheckoutService(cartSvc, client)
	receiptSvc := service.NewReceiptService()
	payrollSvc := service.NewPayrollService(client)
	reportSvc := service.NewReportService()

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc)
	cartHandler := v1.NewCartHandler(cartSvc, catalogSvc)
	catalogHandler := v1.NewCatalogHandler(catalogSvc)
	checkoutHandler := v1.NewCheckoutHandler(checkoutSvc, receiptSvc, cartSvc, catalogSvc)
	payrollHandler := v1.NewPayrollHandler(payrollSvc)
	reportHandler := v1.NewReportHandler(reportSvc, catalogSvc, payrollSvc)

	s.MountHandlers(authSvc, authHandler, cartHandler, catalogHandler, checkoutHandler, payrollHandler, reportHandler)

	go sweepSessions(authSvc)

	return s
}

func sweepSessions(authSvc *service.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authSvc.PurgeExpired(context.Background()); err != nil {
			zap.L().Warn("failed to purge expired sessions", zap.Error(err))
		}
	}
}

func (s *Server) initAuthService(db *gorm.DB, client *upstream.Client) *service.AuthService {
	sessionDAO := dao.NewSessionDAO(db)
	repo := repository.NewSessionRepository(sessionDAO)
	ttl := time.Duration(s.Config.API.SessionTTLMinutes) * time.Minute

	return service.NewAuthService(repo, client, ttl)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authSvc *service.AuthService,
	authHandler *v1.AuthHandler,
	cartHandler *v1.CartHandler,
	catalogHandler *v1.CatalogHandler,
	checkoutHandler *v1.CheckoutHandler,
	payrollHandler *v1.PayrollHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey, authSvc).VerifySession())
	{
		authed.POST("/auth/logout", authHandler.HandleLogout)

		authed.GET("/customers", catalogHandler.HandleListCustomers)
		authed.POST("/customers", catalogHandler.HandleCreateCustomer)
		authed.PUT("/customers/:id", catalogHandler.HandleUpdateCustomer)
		authed.DELETE("/customers/:id", catalogHandler.HandleDeleteCustomer)

		authed.GET("/inventories", catalogHandler.HandleListInventories)
		authed.GET("/inventories/snapshot", catalogHandler.HandleInventorySnapshot)
		authed.POST("/inventories", catalogHandler.HandleCreateInventory)
		authed.PUT("/inventories/:id", catalogHandler.HandleUpdateInventory)
		authed.DELETE("/inventories/:id", catalogHandler.HandleDeleteInventory)

		authed.GET("/employees", catalogHandler.HandleListEmployees)

		authed.GET("/sales", catalogHandler.HandleListSales)
		authed.POST("/sales", catalogHandler.HandleRecordSale)

		authed.GET("/cart", cartHandler.HandleGetCart)
		authed.DELETE("/cart", cartHandler.HandleResetCart)
		authed.POST("/cart/lines", cartHandler.HandleAddLine)
		authed.PUT("/cart/lines/:lineID", cartHandler.HandleUpdateLine)
		authed.DELETE("/cart/lines/:lineID", cartHandler.HandleRemoveLine)

		authed.POST("/checkout", checkoutHandler.HandleCheckout)
		authed.POST("/checkout/receipt", checkoutHandler.HandleReceipt)
		authed.GET("/payments", checkoutHandler.HandleListPayments)

		authed.GET("/salaries", payrollHandler.HandleListSalaries)
		authed.POST("/salaries", payrollHandler.HandleCreateSalary)
		authed.PUT("/salaries/:id", payrollHandler.HandleUpdateSalary)
		authed.DELETE("/salaries/:id", payrollHandler.HandleDeleteSalary)

		authed.GET("/reports/inventory-sales", reportHandler.HandleInventorySalesReport)
		authed.GET("/reports/salaries", reportHandler.HandleSalaryReport)
		authed.GET("/reports/salaries/pdf", reportHandler.HandleSalaryReportPDF)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Pharmacy Back-Office API"
	docs.SwaggerInfo.Description = "Back-office service for the pharmacy admin dashboard."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
