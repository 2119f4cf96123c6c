package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input
	DataPath   string `mapstructure:"data_path" yaml:"data_path"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Dataset shape
	Columns        []string `mapstructure:"columns" yaml:"columns"`
	NumericColumns []string `mapstructure:"numeric_columns" yaml:"numeric_columns"`
	SentinelColumn string   `mapstructure:"sentinel_column" yaml:"sentinel_column"`
	SentinelValue  string   `mapstructure:"sentinel_value" yaml:"sentinel_value"`
	// DecimalSeparator is "", "." or ","; empty auto-detects per value.
	DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`

	// Filtering
	LikertColumns []string `mapstructure:"likert_columns" yaml:"likert_columns"`
	GPAColumn     string   `mapstructure:"gpa_column" yaml:"gpa_column"`
	DefaultColumn string   `mapstructure:"default_column" yaml:"default_column"`

	// Chart
	ChartX         string   `mapstructure:"chart_x" yaml:"chart_x"`
	ChartY         string   `mapstructure:"chart_y" yaml:"chart_y"`
	ChartTitle     string   `mapstructure:"chart_title" yaml:"chart_title"`
	ChartXLabel    string   `mapstructure:"chart_x_label" yaml:"chart_x_label"`
	ChartYLabel    string   `mapstructure:"chart_y_label" yaml:"chart_y_label"`
	TooltipColumns []string `mapstructure:"tooltip_columns" yaml:"tooltip_columns"`

	PresetsDir string `mapstructure:"presets_dir" yaml:"presets_dir"`
}

// likertColumns of the UFM education survey.
var likertColumns = []string{
	"fagligmiljo_likert", "arbmedstud_likert", "medstuderende_likert",
	"udbytte_undervisning_likert", "socialtmiljo_likert", "ensom_likert",
	"stress_daglig_likert", "tilpas_likert", "undervisere_engagerede_likert",
	"undervisere_feedback_likert", "undervisere_hjaelp_likert", "undervisere_kontakt_likert",
	"ruster_til_job_likert", "relevans_overens_udd_job_likert",
}

func defaultColumns() []string {
	info := []string{
		"udbud_id", "titel", "educational_category", "displaydocclass", "hovedinsttx",
		"instregiontx", "instkommunetx", "optagne", "kvote_1_kvotient",
	}
	continuous := []string{
		"afbrud", "tidsforbrug_p50", "tidsforbrug_arbejde",
		"uddaktivitet_opgaver_pct", "uddaktivitet_praktik_pct",
		"uddaktivitet_udlandsophold_pct", "uddaktivitet_undervisning_pct",
		"undervisningsform_p1",
	}
	job := []string{"arbejdstid_timer", "ledighed_nyudd", "maanedloen_nyudd", "maanedloen_10aar"}
	out := append([]string{}, info...)
	out = append(out, likertColumns...)
	out = append(out, continuous...)
	return append(out, job...)
}

// Dir returns ~/.likertlens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".likertlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.likertlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LIKERTLENS")
	v.AutomaticEnv()

	v.SetDefault("data_path", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("columns", defaultColumns())
	v.SetDefault("numeric_columns", append(append([]string{}, likertColumns...), "kvote_1_kvotient"))
	v.SetDefault("sentinel_column", "udbud_id")
	v.SetDefault("sentinel_value", "999999")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("likert_columns", likertColumns)
	v.SetDefault("gpa_column", "kvote_1_kvotient")
	v.SetDefault("default_column", "fagligmiljo_likert")
	v.SetDefault("chart_x", "stress_daglig_likert")
	v.SetDefault("chart_y", "ensom_likert")
	v.SetDefault("chart_title", "Stress vs Loneliness by Educational Program")
	v.SetDefault("chart_x_label", "Daily Stress (Likert)")
	v.SetDefault("chart_y_label", "Loneliness (Likert)")
	v.SetDefault("tooltip_columns", []string{"titel", "stress_daglig_likert", "ensom_likert"})
	v.SetDefault("presets_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.PresetsDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.PresetsDir = filepath.Join(dir, "presets")
	}
	switch c.DecimalSeparator {
	case "", ".", ",":
	default:
		return nil, fmt.Errorf("invalid decimal_separator %q (use \".\", \",\" or empty)", c.DecimalSeparator)
	}
	return &c, nil
}
