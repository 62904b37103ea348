package utils

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
	"github.com/valeriaulyamaeva/finova/models"
)

type categoryRange struct {
	name string
	min  float64
	max  float64
}

var incomeCategories = []categoryRange{
	{"salary", 5000, 8000},
	{"freelance", 1000, 3000},
	{"investments", 500, 2000},
	{"other-income", 100, 1000},
}

var expenseCategories = []categoryRange{
	{"housing", 1000, 2000},
	{"transportation", 100, 500},
	{"groceries", 200, 600},
	{"utilities", 100, 300},
	{"entertainment", 50, 200},
	{"food", 50, 150},
	{"shopping", 100, 500},
	{"healthcare", 100, 1000},
	{"education", 200, 1000},
	{"travel", 500, 2000},
}

// ReferenceCategories — справочник для таблицы categories.
func ReferenceCategories() []models.Category {
	var categories []models.Category
	for _, c := range incomeCategories {
		categories = append(categories, models.Category{Name: c.name, Type: models.TypeIncome})
	}
	for _, c := range expenseCategories {
		categories = append(categories, models.Category{Name: c.name, Type: models.TypeExpense})
	}
	return categories
}

func randomCategory(transactionType string) (string, decimal.Decimal) {
	pool := expenseCategories
	if transactionType == models.TypeIncome {
		pool = incomeCategories
	}
	c := pool[rand.Intn(len(pool))]
	amount := gofakeit.Price(c.min, c.max)
	return c.name, decimal.NewFromFloat(amount)
}

// GenerateDemoTransactions создаёт историю за days дней: 1–3 транзакции
// в день, около 40% — доходы.
func GenerateDemoTransactions(userID, accountID, days int) []models.Transaction {
	var transactions []models.Transaction
	now := time.Now()

	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		perDay := rand.Intn(3) + 1

		for j := 0; j < perDay; j++ {
			transactionType := models.TypeExpense
			if rand.Float64() < 0.4 {
				transactionType = models.TypeIncome
			}
			category, amount := randomCategory(transactionType)

			description := "Paid for " + category
			if transactionType == models.TypeIncome {
				description = "Received " + category
			}

			transactions = append(transactions, models.Transaction{
				UserID:      userID,
				AccountID:   accountID,
				Type:        transactionType,
				Amount:      amount,
				Description: description,
				Date:        date,
				Category:    category,
				Status:      models.StatusCompleted,
			})
		}
	}
	return transactions
}

// SeedDemoData полностью пересевает историю счёта демо-данными через
// движок баланса, чтобы баланс сошёлся с новой историей.
func SeedDemoData(engine *ledger.Engine, userID, accountID int) (int, error) {
	transactions := GenerateDemoTransactions(userID, accountID, 90)
	if err := engine.Reseed(accountID, transactions); err != nil {
		return 0, err
	}
	return len(transactions), nil
}

// GenerateTestUsers добавляет случайных пользователей для ручной проверки.
func GenerateTestUsers(pool *pgxpool.Pool, numUsers int) error {
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			ClerkUserID: gofakeit.UUID(),
			Email:       gofakeit.Email(),
			Name:        gofakeit.Name(),
		}
		if err := database.CreateUser(pool, user); err != nil {
			return err
		}
	}
	return nil
}
