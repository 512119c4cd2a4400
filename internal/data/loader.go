package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sloppymo/shadowrun-backend/internal/rules"
)

// Loader handles reading and instantiating records from the read-only data layer
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a new Data Loader with the given data directory fallback hierarchy
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

// LoadScenario constructs a typed ScenarioTemplate by searching through the data directories sequentially
func (l *Loader) LoadScenario(name string) (*ScenarioTemplate, error) {
	var s ScenarioTemplate
	dashName := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	ref := filepath.Join("scenarios", fmt.Sprintf("%s.yaml", dashName))
	if err := l.load(ref, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadGrid constructs a typed GridTemplate by searching through the data directories sequentially
func (l *Loader) LoadGrid(name string) (*GridTemplate, error) {
	var g GridTemplate
	dashName := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	ref := filepath.Join("grids", fmt.Sprintf("%s.yaml", dashName))
	if err := l.load(ref, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadHouseRules reads the table's houserules.yaml, if present. A
// missing file is not an error; the table just has no house rules.
func (l *Loader) LoadHouseRules() (*rules.HouseRules, error) {
	for _, dir := range l.dataDirs {
		raw, err := os.ReadFile(filepath.Join(dir, "houserules.yaml"))
		if err != nil {
			continue
		}
		return rules.ParseHouseRules(raw)
	}
	return nil, nil
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			if err := decoder.Decode(target); err != nil {
				return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
			}
			return nil
		}
	}
	return fmt.Errorf("could not find or open reference %s in any available data directory", ref)
}
