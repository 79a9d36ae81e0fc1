package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dcrSummary/internal/logger"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	ModeRebuild = "rebuild"
	ModeUpdate  = "update"
)

type Config struct {
	Source Source       `toml:"source" yaml:"source"`
	Target Target       `toml:"target" yaml:"target"`
	Style  Style        `toml:"style"  yaml:"style"`
	UI     UIConfig     `toml:"ui"     yaml:"ui"`
	Log    LogConfig    `toml:"log"    yaml:"log"`
	Groups []TowerGroup `toml:"groups" yaml:"groups"`
	Fields []Field      `toml:"fields" yaml:"fields"`
}

type Source struct {
	Directory    string `toml:"directory"     yaml:"directory"`
	FileTemplate string `toml:"file_template" yaml:"file_template"` // "{}" is replaced by the tower id
	Sheet        string `toml:"sheet"         yaml:"sheet"`
}

type Target struct {
	File           string `toml:"file"            yaml:"file"`
	Mode           string `toml:"mode"            yaml:"mode"`
	StartRow       int    `toml:"start_row"       yaml:"start_row"`
	StartCol       int    `toml:"start_col"       yaml:"start_col"`
	DataRowCount   int    `toml:"data_row_count"  yaml:"data_row_count"`
	RowGap         int    `toml:"row_gap"         yaml:"row_gap"`
	ManagedColumns int    `toml:"managed_columns" yaml:"managed_columns"`
	ReportFile     string `toml:"report_file"     yaml:"report_file"`
}

type Style struct {
	BorderColor string     `toml:"border_color" yaml:"border_color"`
	Digits      int        `toml:"digits"       yaml:"digits"`
	Scale       ColorScale `toml:"color_scale"  yaml:"color_scale"`
}

// ColorScale is a three-stop numeric color scale.
type ColorScale struct {
	Min      float64 `toml:"min"       yaml:"min"`
	Mid      float64 `toml:"mid"       yaml:"mid"`
	Max      float64 `toml:"max"       yaml:"max"`
	MinColor string  `toml:"min_color" yaml:"min_color"`
	MidColor string  `toml:"mid_color" yaml:"mid_color"`
	MaxColor string  `toml:"max_color" yaml:"max_color"`
}

type UIConfig struct {
	Progress bool `toml:"progress" yaml:"progress"`
}

type LogConfig struct {
	Directory string `toml:"directory" yaml:"directory"`
	Level     string `toml:"level"     yaml:"level"`
}

// TowerGroup is a set of towers laid out side by side in row slots.
type TowerGroup struct {
	Name    string   `toml:"name"     yaml:"name"`
	Towers  []string `toml:"towers"   yaml:"towers"`
	ColSpan int      `toml:"col_span" yaml:"col_span"`
	Layout  string   `toml:"layout"   yaml:"layout"` // e.g. "4-over-4"
}

// Field is one DCR quantity, written to its own summary sheet.
type Field struct {
	Name   string            `toml:"name"   yaml:"name"`
	Sheet  string            `toml:"sheet"  yaml:"sheet"`
	Ranges map[string]string `toml:"ranges" yaml:"ranges"` // group name -> "CS3:DU114"
}

// Default returns the tower tables of the M46 JV3.1 model.
func Default() *Config {
	return &Config{
		Source: Source{
			Directory:    ".",
			FileTemplate: "20250411_M46_JV3.1_{}.xlsm",
			Sheet:        "HeatMap",
		},
		Target: Target{
			File:           "Summary.xlsx",
			Mode:           ModeRebuild,
			StartRow:       3,
			StartCol:       2,
			DataRowCount:   113,
			RowGap:         2,
			ManagedColumns: 204,
		},
		Style: Style{
			BorderColor: "AAAAAA",
			Digits:      2,
			Scale: ColorScale{
				Min: 0.6, MinColor: "C6E0B4",
				Mid: 0.8, MidColor: "FFEB84",
				Max: 1.05, MaxColor: "F8696B",
			},
		},
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
		Groups: []TowerGroup{
			{
				Name:    "City Cores",
				Towers:  []string{"N1", "N2", "N3", "N4", "S1", "S2", "S3", "S4"},
				ColSpan: 30,
				Layout:  "4-over-4",
			},
			{
				Name:    "Portal Cores",
				Towers:  []string{"P1", "P2", "P3", "P4"},
				ColSpan: 39,
				Layout:  "2-over-2",
			},
		},
		Fields: []Field{
			{Name: "V_DCR", Sheet: "SummaryVDCR", Ranges: map[string]string{
				"City Cores": "CS3:DU114", "Portal Cores": "DR3:FC115",
			}},
			{Name: "Vmax_DCR", Sheet: "SummaryVmax", Ranges: map[string]string{
				"City Cores": "DX3:EZ114", "Portal Cores": "FE3:GP115",
			}},
			{Name: "PC_DCR", Sheet: "SummaryPCDCR", Ranges: map[string]string{
				"City Cores": "FC3:GE114", "Portal Cores": "GR3:IC115",
			}},
			{Name: "PT_DCR", Sheet: "SummaryPTDCR", Ranges: map[string]string{
				"City Cores": "GH3:HJ114", "Portal Cores": "IE3:JP115",
			}},
		},
	}
}

// LoadConfig loads configuration from a .toml, .yaml or .yml file. A missing
// file is created with the default tables.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		cfg := Default()
		if err := SaveConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// digits = 0 is a valid setting, so its default is set before decoding
	// and only replaced when the key is present
	cfg := Config{Style: Style{Digits: Default().Style.Digits}}
	if isYAML(configPath) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	cfg.applyDefaults()

	logger.Info("Loaded configuration", "path", configPath,
		"groups", len(cfg.Groups), "fields", len(cfg.Fields))
	return &cfg, nil
}

// SaveConfig writes the configuration in the format implied by the extension.
func SaveConfig(configPath string, cfg *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if isYAML(configPath) {
		encoder := yaml.NewEncoder(file)
		encoder.SetIndent(2)
		err = encoder.Encode(cfg)
		if err == nil {
			err = encoder.Close()
		}
	} else {
		err = toml.NewEncoder(file).Encode(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}

// applyDefaults fills zero values. Tables (groups, fields) are never defaulted.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Source.Directory == "" {
		c.Source.Directory = def.Source.Directory
	}
	if c.Source.FileTemplate == "" {
		c.Source.FileTemplate = def.Source.FileTemplate
	}
	if c.Source.Sheet == "" {
		c.Source.Sheet = def.Source.Sheet
	}

	if c.Target.File == "" {
		c.Target.File = def.Target.File
	}
	if c.Target.Mode == "" {
		c.Target.Mode = def.Target.Mode
	}
	if c.Target.StartRow == 0 {
		c.Target.StartRow = def.Target.StartRow
	}
	if c.Target.StartCol == 0 {
		c.Target.StartCol = def.Target.StartCol
	}
	if c.Target.DataRowCount == 0 {
		c.Target.DataRowCount = def.Target.DataRowCount
	}
	if c.Target.RowGap == 0 {
		c.Target.RowGap = def.Target.RowGap
	}
	if c.Target.ManagedColumns == 0 {
		c.Target.ManagedColumns = def.Target.ManagedColumns
	}

	if c.Style.BorderColor == "" {
		c.Style.BorderColor = def.Style.BorderColor
	}
	if c.Style.Scale == (ColorScale{}) {
		c.Style.Scale = def.Style.Scale
	}

	if c.Log.Directory == "" {
		c.Log.Directory = def.Log.Directory
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// SourcePath returns the workbook path for a tower.
func (c *Config) SourcePath(tower string) string {
	return filepath.Join(c.Source.Directory, strings.ReplaceAll(c.Source.FileTemplate, "{}", tower))
}

// Group returns the group with the given name.
func (c *Config) Group(name string) (TowerGroup, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return TowerGroup{}, false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
