package database

import (
	"context"
	"fmt"

	"github.com/valeriaulyamaeva/finova/models"
)

func CreateReport(q Querier, report *models.Report) error {
	query := `
		INSERT INTO reports (user_id, report_data)
		VALUES ($1, $2)
		RETURNING id, generated_date`

	err := q.QueryRow(context.Background(), query,
		report.UserID,
		report.ReportData).Scan(&report.ID, &report.GeneratedDate)
	if err != nil {
		return fmt.Errorf("%w: ошибка при добавлении отчёта: %v", models.ErrStorage, err)
	}
	return nil
}

func ListUserReports(q Querier, userID int) ([]models.Report, error) {
	query := `
		SELECT id, user_id, report_data, generated_date
		FROM reports
		WHERE user_id = $1
		ORDER BY generated_date DESC`

	rows, err := q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении отчётов: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.UserID, &r.ReportData, &r.GeneratedDate); err != nil {
			return nil, fmt.Errorf("%w: ошибка чтения отчёта: %v", models.ErrStorage, err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
