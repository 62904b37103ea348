package database_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/models"
)

func connectTest(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()
	if os.Getenv("DB_NAME") == "" {
		t.Skip("DB_NAME не задан, интеграционные тесты пропущены")
	}

	pool, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.RunMigrations(pool); err != nil {
		t.Fatalf("ошибка миграции схемы: %v", err)
	}
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		ClerkUserID: fmt.Sprintf("test-%d", time.Now().UnixNano()),
		Email:       "test@example.com",
		Name:        "Test User",
	}
	if err := database.CreateUser(pool, user); err != nil {
		t.Fatalf("ошибка создания пользователя: %v", err)
	}
	return user
}

func createTestAccount(t *testing.T, pool *pgxpool.Pool, userID int) *models.Account {
	t.Helper()
	account := &models.Account{
		UserID: userID,
		Name:   "Test Account",
		Type:   "CURRENT",
	}
	if err := database.CreateAccount(pool, account); err != nil {
		t.Fatalf("ошибка создания счёта: %v", err)
	}
	return account
}

func TestCreateTransaction(t *testing.T) {
	pool := connectTest(t)
	user := createTestUser(t, pool)
	account := createTestAccount(t, pool, user.ID)

	transaction := &models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Type:        models.TypeExpense,
		Amount:      decimal.NewFromInt(100),
		Description: "Test transaction",
		Date:        time.Now(),
		Category:    "groceries",
		Status:      models.StatusCompleted,
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	created, err := database.GetUserTransaction(pool, transaction.ID, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения транзакции по ID: %v", err)
	}

	if !created.Amount.Equal(transaction.Amount) || created.Description != transaction.Description {
		t.Errorf("данные транзакции не совпадают: получили %+v, хотели %+v", created, transaction)
	}
}

func TestTransactionOwnershipFilter(t *testing.T) {
	pool := connectTest(t)
	owner := createTestUser(t, pool)
	stranger := createTestUser(t, pool)
	account := createTestAccount(t, pool, owner.ID)

	transaction := &models.Transaction{
		UserID:    owner.ID,
		AccountID: account.ID,
		Type:      models.TypeIncome,
		Amount:    decimal.NewFromInt(50),
		Date:      time.Now(),
		Status:    models.StatusCompleted,
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	// чужая транзакция не должна находиться
	if _, err := database.GetUserTransaction(pool, transaction.ID, stranger.ID); err == nil {
		t.Error("транзакция нашлась для чужого пользователя")
	}
}

func TestDeleteTransactions(t *testing.T) {
	pool := connectTest(t)
	user := createTestUser(t, pool)
	account := createTestAccount(t, pool, user.ID)

	transaction := &models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Type:      models.TypeExpense,
		Amount:    decimal.NewFromInt(300),
		Date:      time.Now(),
		Status:    models.StatusCompleted,
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	if err := database.DeleteTransactions(pool, []int{transaction.ID}, user.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}

	if _, err := database.GetUserTransaction(pool, transaction.ID, user.ID); err == nil {
		t.Error("транзакция всё ещё существует после удаления")
	}
}

func TestUpsertBudget(t *testing.T) {
	pool := connectTest(t)
	user := createTestUser(t, pool)

	budget := &models.Budget{UserID: user.ID, Amount: decimal.NewFromInt(500)}
	if err := database.UpsertBudget(pool, budget); err != nil {
		t.Fatalf("ошибка создания бюджета: %v", err)
	}

	// повторный апсерт меняет сумму, запись остаётся одна
	budget.Amount = decimal.NewFromInt(800)
	if err := database.UpsertBudget(pool, budget); err != nil {
		t.Fatalf("ошибка обновления бюджета: %v", err)
	}

	stored, err := database.GetUserBudget(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения бюджета: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(800)) {
		t.Errorf("сумма бюджета = %s, хотели 800", stored.Amount)
	}
}
