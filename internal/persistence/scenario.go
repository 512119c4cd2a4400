package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScenarioManager bridges configuration settings with local file organization.
type ScenarioManager struct {
	ScenariosDir string
}

// NewScenarioManager returns a manager localized to the configured scenarios directory.
func NewScenarioManager(scenariosDir string) *ScenarioManager {
	return &ScenarioManager{ScenariosDir: scenariosDir}
}

// GetSessionPath produces safe joined dir paths for a scenario session.
func (m *ScenarioManager) GetSessionPath(scenario, session string) string {
	return filepath.Join(m.ScenariosDir, scenario, session)
}

// Create generates the standard structure for a new session and opens its log.
func (m *ScenarioManager) Create(scenario, session string) (*Store, error) {
	path := m.GetSessionPath(scenario, session)

	dirs := []string{
		path,
		filepath.Join(path, "grids"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	logPath := filepath.Join(path, "log.jsonl")
	return NewStore(logPath)
}

// Load verifies an existing session folder and opens its log.
func (m *ScenarioManager) Load(scenario, session string) (*Store, error) {
	path := m.GetSessionPath(scenario, session)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("session folder not properly found: %s", path)
	}

	logPath := filepath.Join(path, "log.jsonl")
	return NewStore(logPath)
}
