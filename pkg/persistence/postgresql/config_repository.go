package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/persistence"
)

// ConfigRepository stores runtime configurations, one row per
// (user, automation). Save is a full-row upsert; concurrent saves serialize
// on the primary key and the last write wins.
type ConfigRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewConfigRepository(db *sql.DB, logger *slog.Logger) *ConfigRepository {
	return &ConfigRepository{db: db, logger: logger}
}

func (r *ConfigRepository) GetByUserAndAutomation(ctx context.Context, userID, automationID string) (*models.RuntimeConfig, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, automation_id, secret_key, webhook_url, custom_prompt,
		       enabled, schedule, config_values, updated_at
		FROM runtime_configs
		WHERE user_id = $1 AND automation_id = $2`,
		userID, automationID)

	var (
		config       models.RuntimeConfig
		secretKey    sql.NullString
		webhookURL   sql.NullString
		customPrompt sql.NullString
		values       []byte
	)

	err := row.Scan(&config.UserID, &config.AutomationID, &secretKey, &webhookURL,
		&customPrompt, &config.Enabled, &config.Schedule, &values, &config.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.NewConfigError("GetByUserAndAutomation", userID, automationID,
			persistence.ErrConfigNotFound)
	}

	if err != nil {
		return nil, persistence.NewConfigError("GetByUserAndAutomation", userID, automationID, err)
	}

	config.SecretKey = secretKey.String
	config.WebhookURL = webhookURL.String
	config.CustomPrompt = customPrompt.String

	if len(values) > 0 {
		if err := json.Unmarshal(values, &config.Values); err != nil {
			return nil, persistence.NewConfigError("GetByUserAndAutomation", userID, automationID,
				fmt.Errorf("failed to decode config values: %w", err))
		}
	}

	return &config, nil
}

func (r *ConfigRepository) Save(ctx context.Context, config *models.RuntimeConfig) error {
	values, err := json.Marshal(config.Values)
	if err != nil {
		return persistence.NewConfigError("Save", config.UserID, config.AutomationID,
			fmt.Errorf("failed to encode config values: %w", err))
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runtime_configs (
			user_id, automation_id, secret_key, webhook_url, custom_prompt,
			enabled, schedule, config_values, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, automation_id) DO UPDATE SET
			secret_key = EXCLUDED.secret_key,
			webhook_url = EXCLUDED.webhook_url,
			custom_prompt = EXCLUDED.custom_prompt,
			enabled = EXCLUDED.enabled,
			schedule = EXCLUDED.schedule,
			config_values = EXCLUDED.config_values,
			updated_at = EXCLUDED.updated_at`,
		config.UserID, config.AutomationID, config.SecretKey, config.WebhookURL,
		config.CustomPrompt, config.Enabled, config.Schedule, values, config.UpdatedAt)
	if err != nil {
		return persistence.NewConfigError("Save", config.UserID, config.AutomationID, err)
	}

	return nil
}
