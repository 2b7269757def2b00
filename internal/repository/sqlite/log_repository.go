package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

// dateLayout is how calendar dates are persisted; logs carry no time of day.
const dateLayout = "2006-01-02"

const createDailyLogsTable = `
CREATE TABLE IF NOT EXISTS daily_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	date TEXT NOT NULL,
	UNIQUE (user_id, date)
);
`

type DailyLogRepository struct {
	db *sql.DB
}

func NewDailyLogRepository(db *sql.DB) repository.DailyLogRepository {
	return &DailyLogRepository{db: db}
}

func (r *DailyLogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDailyLogsTable); err != nil {
		return fmt.Errorf("create daily_logs table: %w", err)
	}
	return nil
}

func (r *DailyLogRepository) Create(ctx context.Context, log *domain.DailyLog) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO daily_logs (user_id, date) VALUES (?, ?)`,
		log.UserID,
		log.Date.Format(dateLayout),
	)
	if err != nil {
		if isUniqueViolation(err, "daily_logs") {
			return 0, repository.ErrDuplicateLogDate
		}
		return 0, fmt.Errorf("insert daily log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("daily log last insert id: %w", err)
	}
	log.ID = id
	return id, nil
}

func (r *DailyLogRepository) GetForUser(ctx context.Context, userID, id int64) (*domain.DailyLog, error) {
	return scanDailyLog(r.db.QueryRowContext(ctx, selectDailyLog+`WHERE user_id = ? AND id = ?`, userID, id))
}

func (r *DailyLogRepository) GetByDate(ctx context.Context, userID int64, date time.Time) (*domain.DailyLog, error) {
	return scanDailyLog(r.db.QueryRowContext(ctx,
		selectDailyLog+`WHERE user_id = ? AND date = ?`, userID, date.Format(dateLayout)))
}

func (r *DailyLogRepository) ListForUser(ctx context.Context, userID int64) ([]domain.DailyLog, error) {
	rows, err := r.db.QueryContext(ctx, selectDailyLog+`WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	return logs, rows.Err()
}

func (r *DailyLogRepository) Update(ctx context.Context, log *domain.DailyLog) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE daily_logs SET date = ? WHERE user_id = ? AND id = ?`,
		log.Date.Format(dateLayout),
		log.UserID,
		log.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "daily_logs") {
			return repository.ErrDuplicateLogDate
		}
		return fmt.Errorf("update daily log: %w", err)
	}
	return requireRowAffected(res, "daily log")
}

func (r *DailyLogRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	return requireRowAffected(res, "daily log")
}

func (r *DailyLogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count daily logs: %w", err)
	}
	return n, nil
}

func (r *DailyLogRepository) ActivitySince(ctx context.Context, since time.Time, limit int) ([]repository.UserActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.username, u.email,
       COUNT(DISTINCT l.id),
       COUNT(e.id)
FROM users u
JOIN daily_logs l ON l.user_id = u.id AND l.date >= ?
LEFT JOIN food_entries e ON e.daily_log_id = l.id
WHERE u.is_active
GROUP BY u.id, u.username, u.email
ORDER BY u.id
LIMIT ?`,
		since.Format(dateLayout),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query user activity: %w", err)
	}
	defer rows.Close()

	var activity []repository.UserActivity
	for rows.Next() {
		var a repository.UserActivity
		if err := rows.Scan(&a.UserID, &a.Username, &a.Email, &a.Logs, &a.Entries); err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

const selectDailyLog = `
SELECT id, user_id, date
FROM daily_logs
`

func scanDailyLog(row interface {
	Scan(dest ...any) error
}) (*domain.DailyLog, error) {
	var (
		log     domain.DailyLog
		rawDate string
	)
	if err := row.Scan(&log.ID, &log.UserID, &rawDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan daily log: %w", err)
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("parse log date %q: %w", rawDate, err)
	}
	log.Date = date
	return &log, nil
}
