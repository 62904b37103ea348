package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/database"
)

type syncUserInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SyncUserHandler создаёт локального пользователя для внешнего
// идентификатора либо возвращает существующего.
func SyncUserHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkUserID := c.GetHeader("X-Clerk-User-Id")
		if clerkUserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Требуется авторизация"})
			return
		}

		var input syncUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		user, err := database.SyncUser(pool, clerkUserID, input.Email, input.Name)
		if err != nil {
			log.Printf("Ошибка синхронизации пользователя %s: %v", clerkUserID, err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось синхронизировать пользователя"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func GetNotificationsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		notifications, err := database.ListUserNotifications(pool, user.ID)
		if err != nil {
			log.Printf("Ошибка получения уведомлений: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить уведомления"})
			return
		}

		c.JSON(http.StatusOK, notifications)
	}
}

func GetReportsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		reports, err := database.ListUserReports(pool, user.ID)
		if err != nil {
			log.Printf("Ошибка получения отчётов: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить отчёты"})
			return
		}

		c.JSON(http.StatusOK, reports)
	}
}

func GetCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.ListCategories(pool)
		if err != nil {
			log.Printf("Ошибка получения категорий: %v", err)
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось получить категории"})
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}
