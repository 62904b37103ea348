package models

import "time"

// Report — сохранённый месячный отчёт (JSON со статистикой и инсайтами).
type Report struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	ReportData    []byte    `json:"report_data" db:"report_data"`
	GeneratedDate time.Time `json:"generated_date" db:"generated_date"`
}
