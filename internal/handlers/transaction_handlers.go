package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
)

// Все изменения транзакций идут через движок баланса: вставка строки и
// корректировка баланса счёта — одно целое.

func CreateTransactionHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input ledger.CreateTransactionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		transaction, err := engine.ApplyCreate(user.ID, input)
		if err != nil {
			log.Printf("Ошибка создания транзакции: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось создать транзакцию"})
			return
		}

		c.JSON(http.StatusCreated, transaction)
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		transactionID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID транзакции"})
			return
		}

		transaction, err := database.GetUserTransaction(pool, transactionID, user.ID)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": "Транзакция не найдена"})
			return
		}

		c.JSON(http.StatusOK, transaction)
	}
}

func UpdateTransactionHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		transactionID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID транзакции"})
			return
		}

		var input ledger.UpdateTransactionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		transaction, err := engine.ApplyUpdate(user.ID, transactionID, input)
		if err != nil {
			log.Printf("Ошибка обновления транзакции %d: %v", transactionID, err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось обновить транзакцию"})
			return
		}

		c.JSON(http.StatusOK, transaction)
	}
}

func ListTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		filter := database.TransactionFilter{Type: c.Query("type")}
		if accountID, err := strconv.Atoi(c.Query("account_id")); err == nil {
			filter.AccountID = accountID
		}
		if recurring, err := strconv.ParseBool(c.Query("is_recurring")); err == nil {
			filter.Recurring = &recurring
		}

		transactions, err := database.ListUserTransactions(pool, user.ID, filter)
		if err != nil {
			log.Printf("Ошибка получения списка транзакций: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить транзакции"})
			return
		}

		c.JSON(http.StatusOK, transactions)
	}
}

type bulkDeleteInput struct {
	TransactionIDs []int `json:"transaction_ids"`
}

// BulkDeleteTransactionsHandler удаляет пачку транзакций. Пустой список —
// успешный no-op.
func BulkDeleteTransactionsHandler(engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input bulkDeleteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		if err := engine.ApplyDelete(user.ID, input.TransactionIDs); err != nil {
			log.Printf("Ошибка пакетного удаления транзакций: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось удалить транзакции"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Транзакции удалены"})
	}
}
