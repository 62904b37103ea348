package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/gemini"
)

// ScanReceiptHandler принимает изображение чека и возвращает распознанные
// поля для предзаполнения формы транзакции. Ничего не сохраняет.
func ScanReceiptHandler(pool *pgxpool.Pool, ai *gemini.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не передан файл чека"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось прочитать файл"})
			return
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не удалось прочитать файл"})
			return
		}

		categories, err := database.ListCategoryNames(pool)
		if err != nil {
			log.Printf("Ошибка получения категорий для промпта: %v", err)
			categories = nil
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		receipt, err := ai.ScanReceipt(c.Request.Context(), fileBytes, mimeType, categories)
		if err != nil {
			log.Printf("Ошибка распознавания чека: %v", err)
			if errors.Is(err, gemini.ErrNotAReceipt) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "На изображении не распознан чек"})
				return
			}
			c.JSON(statusFromError(err), gin.H{"error": "Не удалось распознать чек"})
			return
		}

		c.JSON(http.StatusOK, receipt)
	}
}
