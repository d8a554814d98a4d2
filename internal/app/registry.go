package app

import (
	"database/sql"

	"go-hrms/internal/attendance"
	"go-hrms/internal/autoleave"
	"go-hrms/internal/balance"
	"go-hrms/internal/compoff"
	"go-hrms/internal/correction"
	"go-hrms/internal/department"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/notification"
	"go-hrms/internal/roster"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	correctionRepo := correction.NewRepository(gormDB)
	compOffRepo := compoff.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	autoLeaveRepo := autoleave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Shared Domain Services ---
	ledger := balance.NewLedger(userRepo)
	notifier := notification.NewGateway(userRepo, notificationRepo, outboxRepo)

	// --- Services ---
	userService := user.NewService(userRepo)
	leaveService := leave.NewService(db, leaveRepo, userRepo, ledger, notifier)
	attendanceService := attendance.NewService(attendanceRepo, userRepo)
	correctionService := correction.NewService(db, correctionRepo, attendanceRepo, leaveRepo, userRepo, ledger, notifier)
	compOffService := compoff.NewService(db, compOffRepo, userRepo, ledger, notifier)
	departmentService := department.NewService(departmentRepo, userRepo)
	rosterService := roster.NewService(rosterRepo)
	autoLeaveService := autoleave.NewService(db, autoLeaveRepo, userRepo, leaveRepo, attendanceRepo, compOffRepo, rosterRepo)
	balanceService := balance.NewAdminService(db, ledger)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	correctionHandler := correction.NewHandler(correctionService)
	compOffHandler := compoff.NewHandler(compOffService)
	departmentHandler := department.NewHandler(departmentService)
	rosterHandler := roster.NewHandler(rosterService)
	autoLeaveHandler := autoleave.NewHandler(autoLeaveService)
	balanceHandler := balance.NewHandler(balanceService)
	notificationHandler := notification.NewHandler(notificationRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler)
		correction.RegisterRoutes(api, correctionHandler, rdb)
		compoff.RegisterRoutes(api, compOffHandler, rdb)
		department.RegisterRoutes(api, departmentHandler)
		roster.RegisterRoutes(api, rosterHandler)
		autoleave.RegisterRoutes(api, autoLeaveHandler)
		balance.RegisterRoutes(api, balanceHandler)
		notification.RegisterRoutes(api, notificationHandler)
	}
}
