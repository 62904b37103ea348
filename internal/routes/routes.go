package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/gemini"
	"github.com/valeriaulyamaeva/finova/internal/handlers"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
)

func SetupRouter(pool *pgxpool.Pool, ledgerEngine *ledger.Engine, ai *gemini.Client) *gin.Engine {
	r := gin.Default()
	r.Use(handlers.CORSMiddleware())

	r.POST("/api/sync", handlers.SyncUserHandler(pool))

	api := r.Group("/api", handlers.AuthMiddleware(pool))
	{
		api.POST("/accounts", handlers.CreateAccountHandler(pool))
		api.GET("/accounts", handlers.ListAccountsHandler(pool))
		api.GET("/accounts/:id", handlers.GetAccountHandler(pool))
		api.PUT("/accounts/:id/default", handlers.SetDefaultAccountHandler(pool))

		api.POST("/transactions", handlers.CreateTransactionHandler(ledgerEngine))
		api.GET("/transactions", handlers.ListTransactionsHandler(pool))
		api.GET("/transactions/:id", handlers.GetTransactionHandler(pool))
		api.PUT("/transactions/:id", handlers.UpdateTransactionHandler(ledgerEngine))
		api.POST("/transactions/bulk-delete", handlers.BulkDeleteTransactionsHandler(ledgerEngine))

		api.GET("/budget", handlers.GetCurrentBudgetHandler(pool))
		api.PUT("/budget", handlers.UpdateBudgetHandler(pool))

		api.POST("/receipts/scan", handlers.ScanReceiptHandler(pool, ai))

		api.GET("/notifications", handlers.GetNotificationsHandler(pool))
		api.GET("/reports", handlers.GetReportsHandler(pool))
		api.GET("/categories", handlers.GetCategoriesHandler(pool))

		api.POST("/seed", handlers.SeedTransactionsHandler(pool, ledgerEngine))
	}

	return r
}
