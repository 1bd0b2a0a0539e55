package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/handlers"
	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	auth := rg.Group("/auth")
	auth.Use(middleware.AuthRateLimiter())
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
}

// SetupUserRoutes sets up protected profile and 2FA routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

// SetupCoupleRoutes sets up pairing, couple info and teardown.
func SetupCoupleRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	couples := services.NewCoupleService(db)

	invitationHandler := &handlers.InvitationHandler{Couples: couples}
	rg.POST("/invitations", invitationHandler.SendInvitation)
	rg.GET("/invitations", invitationHandler.GetInvitations)
	rg.PATCH("/invitations", invitationHandler.RespondInvitation)

	coupleHandler := &handlers.CoupleHandler{Couples: couples, WS: ws}
	rg.GET("/couple", coupleHandler.GetCouple)
	rg.DELETE("/couple", coupleHandler.EndRelationship)
}

// SetupLedgerRoutes sets up the expense, loan and payment ledgers.
func SetupLedgerRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	couples := services.NewCoupleService(db)
	ledger := services.NewLedgerService(db)

	expenseHandler := &handlers.ExpenseHandler{DB: db, Couples: couples, WS: ws}
	rg.POST("/expenses", expenseHandler.CreateExpense)
	rg.GET("/expenses", expenseHandler.GetExpenses)

	loanHandler := &handlers.LoanHandler{Ledger: ledger, WS: ws}
	rg.POST("/loans", loanHandler.CreateLoan)
	rg.GET("/loans", loanHandler.GetLoans)
	rg.PATCH("/loans", loanHandler.UpdateLoan)
	rg.POST("/loan-payments", loanHandler.CreatePayment)
	rg.GET("/loan-payments", loanHandler.GetPayments)
}

// SetupTodoRoutes sets up the shared panorama list.
func SetupTodoRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	couples := services.NewCoupleService(db)
	todoHandler := &handlers.TodoHandler{DB: db, Couples: couples, WS: ws}

	rg.POST("/panoramas", todoHandler.CreateTodo)
	rg.GET("/panoramas", todoHandler.GetTodos)
	rg.PATCH("/panoramas", todoHandler.UpdateTodo)
	rg.DELETE("/panoramas", todoHandler.DeleteTodo)
}

// SetupWellnessRoutes sets up cycle, intimacy and contraceptive
// tracking.
func SetupWellnessRoutes(rg *gin.RouterGroup, db *sql.DB) {
	couples := services.NewCoupleService(db)
	wellnessHandler := &handlers.WellnessHandler{DB: db, Couples: couples}

	rg.POST("/wellness/cycle-phases", wellnessHandler.CreateCyclePhase)
	rg.GET("/wellness/cycle-phases", wellnessHandler.GetCyclePhases)
	rg.PATCH("/wellness/cycle-phases", wellnessHandler.EndCyclePhase)
	rg.POST("/wellness/intimacy", wellnessHandler.CreateIntimacyEvent)
	rg.GET("/wellness/intimacy", wellnessHandler.GetIntimacyEvents)
	rg.POST("/wellness/contraceptive", wellnessHandler.CreateContraceptiveEvent)
	rg.GET("/wellness/contraceptive", wellnessHandler.GetContraceptiveEvents)
}
