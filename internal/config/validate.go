package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Extraction.DumpPath == "" {
		return fmt.Errorf("extraction.dump_path must not be empty")
	}
	if c.Extraction.WordListPath == "" {
		return fmt.Errorf("extraction.word_list_path must not be empty")
	}
	if c.Extraction.OutputPath == "" {
		return fmt.Errorf("extraction.output_path must not be empty")
	}
	if c.Extraction.ProgressEvery <= 0 {
		return fmt.Errorf("extraction.progress_every must be > 0 (got %d)", c.Extraction.ProgressEvery)
	}
	if c.Extraction.BatchSize <= 0 {
		return fmt.Errorf("extraction.batch_size must be > 0 (got %d)", c.Extraction.BatchSize)
	}
	if c.Database.DSN != "" && c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	return nil
}
