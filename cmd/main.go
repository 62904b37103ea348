package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/valeriaulyamaeva/finova/internal/alerts"
	"github.com/valeriaulyamaeva/finova/internal/database"
	"github.com/valeriaulyamaeva/finova/internal/gemini"
	"github.com/valeriaulyamaeva/finova/internal/ledger"
	"github.com/valeriaulyamaeva/finova/internal/mailer"
	"github.com/valeriaulyamaeva/finova/internal/recurring"
	"github.com/valeriaulyamaeva/finova/internal/reports"
	"github.com/valeriaulyamaeva/finova/internal/routes"
	"github.com/valeriaulyamaeva/finova/utils"
)

// ScheduleRecurringTransactions раз в сутки собирает просроченные
// повторяющиеся транзакции и обрабатывает каждую независимо.
func ScheduleRecurringTransactions(c *cron.Cron, engine *recurring.Engine) {
	_, err := c.AddFunc("0 0 * * *", func() {
		count, err := engine.ProcessDue(time.Now())
		if err != nil {
			log.Printf("Ошибка обхода повторяющихся транзакций: %v", err)
			return
		}
		log.Printf("Обработано повторяющихся транзакций: %d", count)
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для повторяющихся транзакций: %v", err)
	}
}

func ScheduleBudgetAlerts(c *cron.Cron, evaluator *alerts.Evaluator) {
	_, err := c.AddFunc("0 */6 * * *", func() {
		if err := evaluator.CheckBudgets(time.Now()); err != nil {
			log.Printf("Ошибка проверки бюджетов: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для бюджетных алертов: %v", err)
	}
}

func ScheduleMonthlyReports(c *cron.Cron, generator *reports.Generator) {
	_, err := c.AddFunc("0 0 1 * *", func() {
		if err := generator.GenerateMonthly(time.Now()); err != nil {
			log.Printf("Ошибка генерации месячных отчётов: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Ошибка настройки CRON-задачи для месячных отчётов: %v", err)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Файл .env не найден, используются переменные окружения")
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("Ошибка миграции схемы: %v", err)
	}
	if err := database.SeedCategories(pool, utils.ReferenceCategories()); err != nil {
		log.Printf("Ошибка заполнения категорий: %v", err)
	}

	sender := mailer.NewFromEnv()
	ai := gemini.New()
	ledgerEngine := ledger.New(pool)
	recurringEngine := recurring.New(pool, ledgerEngine)
	evaluator := alerts.New(pool, sender)
	reportGenerator := reports.New(pool, sender, ai)

	c := cron.New()
	ScheduleRecurringTransactions(c, recurringEngine)
	ScheduleBudgetAlerts(c, evaluator)
	ScheduleMonthlyReports(c, reportGenerator)
	c.Start()

	r := routes.SetupRouter(pool, ledgerEngine, ai)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
