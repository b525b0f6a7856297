package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stock-ledger/internal/handler"
	"go-stock-ledger/internal/middleware"
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.StockBase{}, &model.Inbound{}, &model.Outbound{},
		&model.User{}, &model.Privilege{}, &model.Role{})

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	stockBaseRepo := repository.NewStockBaseRepo(db)
	inboundRepo := repository.NewInboundRepo(db)
	outboundRepo := repository.NewOutboundRepo(db)
	reportRepo := repository.NewReportRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	stockBaseService := service.NewStockBaseService(stockBaseRepo)
	inboundService := service.NewInboundService(inboundRepo, db, wsHub)
	outboundService := service.NewOutboundService(outboundRepo, inboundRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, wsHub)

	stockBaseHandler := handler.NewStockBaseHandler(stockBaseService)
	inboundHandler := handler.NewInboundHandler(inboundService)
	outboundHandler := handler.NewOutboundHandler(outboundService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stock Ledger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stock-movement", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetStockMovement)
	protected.Get("/dashboard/stock-levels", middleware.RequirePrivilege("dashboard:view"), reportHandler.GetStockLevels)

	// Stock base catalog
	protected.Get("/basecode", middleware.RequirePrivilege("basecode:view"), stockBaseHandler.GetAll)
	protected.Get("/basecode/:code", middleware.RequirePrivilege("basecode:view"), stockBaseHandler.GetByCode)
	protected.Post("/basecode", middleware.RequirePrivilege("basecode:create"), stockBaseHandler.Create)
	protected.Put("/basecode/:code", middleware.RequirePrivilege("basecode:update"), stockBaseHandler.Update)
	protected.Delete("/basecode/:code", middleware.RequirePrivilege("basecode:delete"), stockBaseHandler.Delete)

	// Inbound ledger
	protected.Get("/inbound", middleware.RequirePrivilege("inbound:view"), inboundHandler.GetAll)
	protected.Get("/inbound/stock/:code", middleware.RequirePrivilege("inbound:view"), inboundHandler.GetByStockCode)
	protected.Get("/inbound/date/:date", middleware.RequirePrivilege("inbound:view"), inboundHandler.GetByDate)
	protected.Get("/inbound/:code/:date", middleware.RequirePrivilege("inbound:view"), inboundHandler.GetOne)
	protected.Post("/inbound", middleware.RequirePrivilege("inbound:save"), inboundHandler.SaveBatch)

	// Outbound ledger
	protected.Get("/outbound", middleware.RequirePrivilege("outbound:view"), outboundHandler.GetAll)
	protected.Get("/outbound/stock/:code", middleware.RequirePrivilege("outbound:view"), outboundHandler.GetByStockCode)
	protected.Get("/outbound/date/:date", middleware.RequirePrivilege("outbound:view"), outboundHandler.GetByDate)
	protected.Get("/outbound/:id", middleware.RequirePrivilege("outbound:view"), outboundHandler.GetByID)
	protected.Post("/outbound", middleware.RequirePrivilege("outbound:save"), outboundHandler.SaveBatch)
	protected.Post("/outbound/one", middleware.RequirePrivilege("outbound:save"), outboundHandler.Create)
	protected.Put("/outbound/:id", middleware.RequirePrivilege("outbound:save"), outboundHandler.Update)
	protected.Delete("/outbound/:id", middleware.RequirePrivilege("outbound:save"), outboundHandler.Delete)
	protected.Post("/outbound/:id/complete", middleware.RequirePrivilege("outbound:complete"), outboundHandler.Complete)

	// User management
	protected.Get("/users", middleware.RequirePrivilege("user:view"), userHandler.GetUsers)
	protected.Get("/users/pending", middleware.RequirePrivilege("user:approve"), userHandler.GetPendingUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege("user:view"), userHandler.GetUser)
	protected.Post("/users/:id/approve", middleware.RequirePrivilege("user:approve"), userHandler.ApproveUser)
	protected.Post("/users/:id/reject", middleware.RequirePrivilege("user:approve"), userHandler.RejectUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles
	protected.Get("/roles", roleHandler.GetRoles)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and the
// master admin account if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets ALL privileges
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(masterRole).Association("Privileges").Replace(allPrivileges)
	}

	// ADMIN runs the catalog and ledgers but not user administration
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		adminPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:approve" && p.Code != "user:delete" && p.Code != "user:update_privilege" {
				adminPrivileges = append(adminPrivileges, p)
			}
		}
		db.Model(adminRole).Association("Privileges").Replace(adminPrivileges)
	}

	// STAFF records and views ledger entries only
	staffRole, err := roleRepo.FindByCode(model.RoleStaff)
	if err == nil && len(staffRole.Privileges) == 0 {
		staffCodes := map[string]bool{
			"basecode:view": true,
			"inbound:view":  true, "inbound:save": true,
			"outbound:view": true, "outbound:save": true,
			"dashboard:view": true,
		}
		staffPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if staffCodes[p.Code] {
				staffPrivileges = append(staffPrivileges, p)
			}
		}
		db.Model(staffRole).Association("Privileges").Replace(staffPrivileges)
	}

	// 4. Create the master admin account
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			Status:     model.UserActive,
			RoleID:     &masterRole.ID,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com (MASTER_ADMIN)")
		}
	}
}
