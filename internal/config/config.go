package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/studydash/internal/pdf"
	"github.com/at-ishikawa/studydash/internal/timer"
)

type Config struct {
	Timer     TimerConfig     `mapstructure:"timer"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

// TimerConfig holds the initial timer settings. Minutes outside the
// slider ranges are clamped, not rejected.
type TimerConfig struct {
	WorkMinutes       int           `mapstructure:"work_minutes"`
	ShortBreakMinutes int           `mapstructure:"short_break_minutes"`
	LongBreakMinutes  int           `mapstructure:"long_break_minutes"`
	TickInterval      time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
}

type SeedConfig struct {
	// File is empty to use the embedded sample data
	File string `mapstructure:"file" validate:"omitempty,file"`
}

type PlannerConfig struct {
	ReminderTime string `mapstructure:"reminder_time" validate:"omitempty,datetime=15:04"`
	Location     string `mapstructure:"location" validate:"omitempty,timezone"`
}

type TemplatesConfig struct {
	GradeReportTemplate   string `mapstructure:"grade_report_template" validate:"omitempty,file"`
	PlannerReportTemplate string `mapstructure:"planner_report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory" validate:"required"`
	PDFTheme        string `mapstructure:"pdf_theme" validate:"oneof=light dark"`
}

func (c TimerConfig) Settings() timer.Settings {
	return timer.Settings{
		WorkMinutes:       c.WorkMinutes,
		ShortBreakMinutes: c.ShortBreakMinutes,
		LongBreakMinutes:  c.LongBreakMinutes,
	}.Clamp()
}

// LoadLocation returns the zone reminders are scheduled in. Empty means local time.
func (c PlannerConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", c.Location, err)
	}
	return loc, nil
}

func (c OutputsConfig) Theme() pdf.Theme {
	return pdf.Theme(c.PDFTheme)
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studydash")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	defaults := timer.DefaultSettings()
	v.SetDefault("timer.work_minutes", defaults.WorkMinutes)
	v.SetDefault("timer.short_break_minutes", defaults.ShortBreakMinutes)
	v.SetDefault("timer.long_break_minutes", defaults.LongBreakMinutes)
	v.SetDefault("timer.tick_interval", time.Second)
	// Seed and templates are optional - if not specified, embedded fallbacks are used
	v.SetDefault("seed.file", "")
	v.SetDefault("planner.reminder_time", "")
	v.SetDefault("planner.location", "")
	v.SetDefault("templates.grade_report_template", "")
	v.SetDefault("templates.planner_report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("outputs.pdf_theme", string(pdf.ThemeLight))

	if err := v.BindEnv("seed.file", "STUDYDASH_SEED_FILE"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYDASH_SEED_FILE environment variable: %w", err)
	}
	if err := v.BindEnv("planner.reminder_time", "STUDYDASH_REMINDER_TIME"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYDASH_REMINDER_TIME environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
