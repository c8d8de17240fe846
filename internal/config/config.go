package config

import "time"

// Config is the root application configuration.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
}

// ExtractionConfig holds the dump extraction settings.
type ExtractionConfig struct {
	DumpPath      string `yaml:"dump_path"      env:"EXTRACT_DUMP_PATH"      env-default:"enwiktionary-latest-pages-articles.xml.bz2"`
	WordListPath  string `yaml:"word_list_path" env:"EXTRACT_WORD_LIST_PATH" env-default:"wordfreqs.txt"`
	OutputPath    string `yaml:"output_path"    env:"EXTRACT_OUTPUT_PATH"    env-default:"definitions.txt"`
	ProgressEvery int    `yaml:"progress_every" env:"EXTRACT_PROGRESS_EVERY" env-default:"100000"`
	BatchSize     int    `yaml:"batch_size"     env:"EXTRACT_BATCH_SIZE"     env-default:"500"`
	DryRun        bool   `yaml:"dry_run"        env:"EXTRACT_DRY_RUN"        env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings. The DSN is optional:
// when empty the catalog sink is disabled and results go to the output file
// only.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
