package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/config"
	appHTTP "github.com/brynsgtn/intern-attendance-webapp-sub000/internal/handler/http"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/database"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/email"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/jwt"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/repository/postgresql"
	attendanceService "github.com/brynsgtn/intern-attendance-webapp-sub000/internal/service/attendance"
	authService "github.com/brynsgtn/intern-attendance-webapp-sub000/internal/service/auth"
	reportService "github.com/brynsgtn/intern-attendance-webapp-sub000/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, emailService)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, attendanceHandler, reportHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
