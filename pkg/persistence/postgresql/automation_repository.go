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

// AutomationRepository stores marketplace automation metadata.
type AutomationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewAutomationRepository(db *sql.DB, logger *slog.Logger) *AutomationRepository {
	return &AutomationRepository{db: db, logger: logger}
}

func (r *AutomationRepository) GetAll(ctx context.Context) ([]*models.Automation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, category, features FROM automations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query automations: %w", err)
	}
	defer rows.Close()

	automations := make([]*models.Automation, 0)

	for rows.Next() {
		automation, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}

		automations = append(automations, automation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate automations: %w", err)
	}

	return automations, nil
}

func (r *AutomationRepository) GetByID(ctx context.Context, id string) (*models.Automation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, category, features FROM automations WHERE id = $1`, id)

	automation, err := scanAutomation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", persistence.ErrAutomationNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	return automation, nil
}

func (r *AutomationRepository) Save(ctx context.Context, automation *models.Automation) error {
	features, err := json.Marshal(automation.Features)
	if err != nil {
		return fmt.Errorf("failed to encode automation features: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO automations (id, title, description, category, features)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			features = EXCLUDED.features`,
		automation.ID, automation.Title, automation.Description, automation.Category, features)
	if err != nil {
		return fmt.Errorf("failed to save automation %s: %w", automation.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAutomation(row rowScanner) (*models.Automation, error) {
	var (
		automation models.Automation
		category   sql.NullString
		features   []byte
	)

	err := row.Scan(&automation.ID, &automation.Title, &automation.Description, &category, &features)
	if err != nil {
		return nil, fmt.Errorf("failed to scan automation: %w", err)
	}

	automation.Category = category.String

	if len(features) > 0 {
		if err := json.Unmarshal(features, &automation.Features); err != nil {
			return nil, fmt.Errorf("failed to decode automation features: %w", err)
		}
	}

	return &automation, nil
}
