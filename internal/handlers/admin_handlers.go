package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
	"github.com/valeriaulyamaeva/finova/utils"
)

// SeedTransactionsHandler — административный пересев истории счёта
// демо-данными. Старые транзакции стираются, баланс пересчитывается
// с нуля по новому набору.
func SeedTransactionsHandler(pool *pgxpool.Pool, engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		accountID, err := strconv.Atoi(c.Query("account_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID счёта"})
			return
		}

		// счёт должен принадлежать пользователю
		if _, err := database.GetUserAccount(pool, accountID, user.ID); err != nil {
			c.JSON(statusFromError(err), gin.H{"error": "Счёт не найден"})
			return
		}

		count, err := utils.SeedDemoData(engine, user.ID, accountID)
		if err != nil {
			log.Printf("Ошибка пересева счёта %d: %v", accountID, err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось пересеять данные"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Данные пересеяны", "created": count})
	}
}
