package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/hadirhq/hadir-backend-go/internal/config"
	appHTTP "github.com/hadirhq/hadir-backend-go/internal/handler/http"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/cron"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/database"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/genai"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/jwt"
	"github.com/hadirhq/hadir-backend-go/internal/pkg/oauth"
	"github.com/hadirhq/hadir-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hadirhq/hadir-backend-go/internal/service/attendance"
	authService "github.com/hadirhq/hadir-backend-go/internal/service/auth"
	dashboardService "github.com/hadirhq/hadir-backend-go/internal/service/dashboard"
	employeeService "github.com/hadirhq/hadir-backend-go/internal/service/employee"
	payrollService "github.com/hadirhq/hadir-backend-go/internal/service/payroll"
	policyService "github.com/hadirhq/hadir-backend-go/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	narrativeClient := genai.NewClient(cfg.Narrative)

	authSvc := authService.NewAuthService(employeeRepo, jwtRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	policySvc := policyService.NewPolicyService(policyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, policyRepo)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, attendanceRepo, policyRepo, payrollRepo, narrativeClient)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo, policyRepo)

	if err := policySvc.EnsureDefault(context.Background()); err != nil {
		log.Fatal("Error seeding attendance policy: ", err)
	}

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Policy:     appHTTP.NewPolicyHandler(policySvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(db, attendanceRepo, employeeRepo, policyRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
