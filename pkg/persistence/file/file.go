// Package file provides a file-based persistence implementation for
// development and tests. Documents are stored as JSON under a root
// directory; a single mutex serializes writes.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/readyreserve/readyflow/pkg/models"
	"github.com/readyreserve/readyflow/pkg/persistence"
)

const (
	automationsDir = "automations"
	configsDir     = "configs"
	logsDir        = "logs"

	dirPerm  = 0o755
	filePerm = 0o644

	defaultLogLimit = 50
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root string
	mu   sync.Mutex
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

func (p *Persistence) Automations(_ context.Context) ([]*models.Automation, error) {
	dir := filepath.Join(p.root, automationsDir)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []*models.Automation{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read automations directory: %w", err)
	}

	automations := make([]*models.Automation, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		var automation models.Automation
		if err := readJSON(filepath.Join(dir, entry.Name()), &automation); err != nil {
			return nil, err
		}

		automations = append(automations, &automation)
	}

	sort.Slice(automations, func(i, j int) bool {
		return automations[i].ID < automations[j].ID
	})

	return automations, nil
}

func (p *Persistence) AutomationByID(_ context.Context, id string) (*models.Automation, error) {
	path := filepath.Join(p.root, automationsDir, id+".json")

	var automation models.Automation

	err := readJSON(path, &automation)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", persistence.ErrAutomationNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	return &automation, nil
}

func (p *Persistence) SaveAutomation(_ context.Context, automation *models.Automation) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	path := filepath.Join(p.root, automationsDir, automation.ID+".json")

	return writeJSON(path, automation)
}

func (p *Persistence) ConfigByUserAndAutomation(_ context.Context, userID, automationID string) (*models.RuntimeConfig, error) {
	path := filepath.Join(p.root, configsDir, configFileName(userID, automationID))

	var config models.RuntimeConfig

	err := readJSON(path, &config)
	if os.IsNotExist(err) {
		return nil, persistence.NewConfigError("GetByUserAndAutomation", userID, automationID,
			persistence.ErrConfigNotFound)
	}

	if err != nil {
		return nil, persistence.NewConfigError("GetByUserAndAutomation", userID, automationID, err)
	}

	return &config, nil
}

// SaveConfig overwrites the whole document; last write wins.
func (p *Persistence) SaveConfig(_ context.Context, config *models.RuntimeConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	path := filepath.Join(p.root, configsDir, configFileName(config.UserID, config.AutomationID))

	if err := writeJSON(path, config); err != nil {
		return persistence.NewConfigError("Save", config.UserID, config.AutomationID, err)
	}

	return nil
}

func (p *Persistence) AppendLog(_ context.Context, entry *models.ExecutionLogEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

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

	path := filepath.Join(p.root, logsDir, configFileName(entry.UserID, entry.AutomationID))

	var entries []*models.ExecutionLogEntry

	err := readJSON(path, &entries)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read execution log: %w", err)
	}

	entries = append(entries, entry)

	return writeJSON(path, entries)
}

func (p *Persistence) LogsByUserAndAutomation(_ context.Context, userID, automationID string, limit int) ([]*models.ExecutionLogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	path := filepath.Join(p.root, logsDir, configFileName(userID, automationID))

	var entries []*models.ExecutionLogEntry

	err := readJSON(path, &entries)
	if os.IsNotExist(err) {
		return []*models.ExecutionLogEntry{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read execution log: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func configFileName(userID, automationID string) string {
	return userID + "__" + automationID + ".json"
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
