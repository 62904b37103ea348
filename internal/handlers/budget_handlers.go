package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/models"
)

// GetCurrentBudgetHandler отдаёт бюджет пользователя и расходы текущего
// месяца по указанному счёту.
func GetCurrentBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		accountID, err := strconv.Atoi(c.Query("account_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID счёта"})
			return
		}

		budget, err := database.GetUserBudget(pool, user.ID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			log.Printf("Ошибка получения бюджета: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить бюджет"})
			return
		}

		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		expenses, err := database.MonthExpenseTotal(pool, user.ID, accountID, monthStart, now)
		if err != nil {
			log.Printf("Ошибка подсчёта расходов: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось посчитать расходы"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"budget":           budget,
			"current_expenses": expenses,
		})
	}
}

type updateBudgetInput struct {
	Amount decimal.Decimal `json:"amount"`
}

func UpdateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var input updateBudgetInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if !input.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма бюджета должна быть положительной"})
			return
		}

		budget := &models.Budget{UserID: user.ID, Amount: input.Amount}
		if err := database.UpsertBudget(pool, budget); err != nil {
			log.Printf("Ошибка сохранения бюджета: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось сохранить бюджет"})
			return
		}

		c.JSON(http.StatusOK, budget)
	}
}
