package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/readyreserve/readyflow/pkg/models"
)

const defaultLogLimit = 50

// ExecutionLogRepository is the append-only execution history.
type ExecutionLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExecutionLogRepository(db *sql.DB, logger *slog.Logger) *ExecutionLogRepository {
	return &ExecutionLogRepository{db: db, logger: logger}
}

func (r *ExecutionLogRepository) Append(ctx context.Context, entry *models.ExecutionLogEntry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate log entry id: %w", err)
		}

		entry.ID = id.String()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	inputData, err := json.Marshal(entry.InputData)
	if err != nil {
		return fmt.Errorf("failed to encode log input data: %w", err)
	}

	outputData, err := json.Marshal(entry.OutputData)
	if err != nil {
		return fmt.Errorf("failed to encode log output data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO execution_logs (
			id, automation_id, user_id, status, message,
			input_data, output_data, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.AutomationID, entry.UserID, entry.Status, entry.Message,
		inputData, outputData, entry.DurationMS, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append execution log: %w", err)
	}

	return nil
}

func (r *ExecutionLogRepository) ListByUserAndAutomation(ctx context.Context, userID, automationID string, limit int) ([]*models.ExecutionLogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, automation_id, user_id, status, message,
		       input_data, output_data, duration_ms, created_at
		FROM execution_logs
		WHERE user_id = $1 AND automation_id = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		userID, automationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query execution logs: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.ExecutionLogEntry, 0)

	for rows.Next() {
		var (
			entry      models.ExecutionLogEntry
			message    sql.NullString
			inputData  []byte
			outputData []byte
		)

		err := rows.Scan(&entry.ID, &entry.AutomationID, &entry.UserID, &entry.Status,
			&message, &inputData, &outputData, &entry.DurationMS, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution log: %w", err)
		}

		entry.Message = message.String

		if len(inputData) > 0 {
			if err := json.Unmarshal(inputData, &entry.InputData); err != nil {
				return nil, fmt.Errorf("failed to decode log input data: %w", err)
			}
		}

		if len(outputData) > 0 {
			if err := json.Unmarshal(outputData, &entry.OutputData); err != nil {
				return nil, fmt.Errorf("failed to decode log output data: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate execution logs: %w", err)
	}

	return entries, nil
}
