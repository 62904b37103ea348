package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/models"
)

type createAccountInput struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsDefault bool            `json:"is_default"`
}

// CreateAccountHandler создаёт счёт. Первый счёт пользователя всегда
// становится счётом по умолчанию; назначение нового умолчания снимает
// флаг со старого.
func CreateAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input createAccountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не указано название счёта"})
			return
		}
		if input.Type == "" {
			input.Type = "CURRENT"
		}

		count, err := database.CountUserAccounts(pool, user.ID)
		if err != nil {
			log.Printf("Ошибка подсчёта счетов: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось создать счёт"})
			return
		}

		isDefault := input.IsDefault || count == 0
		if isDefault {
			if err := database.ClearDefaultAccount(pool, user.ID); err != nil {
				log.Printf("Ошибка сброса счёта по умолчанию: %v", err)
				c.JSON(statusFromError(err), gin.H{"error": "Не удалось создать счёт"})
				return
			}
		}

		account := &models.Account{
			UserID:    user.ID,
			Name:      input.Name,
			Type:      input.Type,
			Balance:   input.Balance,
			IsDefault: isDefault,
		}
		if err := database.CreateAccount(pool, account); err != nil {
			log.Printf("Ошибка создания счёта: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось создать счёт"})
			return
		}

		c.JSON(http.StatusCreated, account)
	}
}

func ListAccountsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		accounts, err := database.ListAccountsWithCounts(pool, user.ID)
		if err != nil {
			log.Printf("Ошибка получения списка счетов: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить счета"})
			return
		}

		c.JSON(http.StatusOK, accounts)
	}
}

// GetAccountHandler отдаёт счёт вместе с его транзакциями.
func GetAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		accountID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID счёта"})
			return
		}

		account, err := database.GetUserAccount(pool, accountID, user.ID)
		if err != nil {
			c.JSON(statusFromError(err), gin.H{"error": "Счёт не найден"})
			return
		}

		transactions, err := database.ListAccountTransactions(pool, accountID, user.ID)
		if err != nil {
			log.Printf("Ошибка получения транзакций счёта: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить транзакции"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"account":           account,
			"transactions":      transactions,
			"transaction_count": len(transactions),
		})
	}
}

func SetDefaultAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		accountID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID счёта"})
			return
		}

		if err := database.ClearDefaultAccount(pool, user.ID); err != nil {
			log.Printf("Ошибка сброса счёта по умолчанию: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось сменить счёт по умолчанию"})
			return
		}
		if err := database.SetDefaultAccount(pool, accountID, user.ID); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": "Счёт не найден"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Счёт по умолчанию обновлён"})
	}
}
