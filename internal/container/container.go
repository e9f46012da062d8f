// Package container provides dependency injection for the budget-csv
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"os"

	"fjacquet/budget-csv/internal/bankparser"
	"fjacquet/budget-csv/internal/batch"
	"fjacquet/budget-csv/internal/classifier"
	"fjacquet/budget-csv/internal/cleaner"
	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/pipeline"
	"fjacquet/budget-csv/internal/prompt"
	"fjacquet/budget-csv/internal/report"
	"fjacquet/budget-csv/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation; components receive their
// dependencies through constructors only.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.CategoryStore
	prompter   prompt.Prompter
	classifier *classifier.Classifier
	pipeline   *pipeline.Pipeline
	writer     *report.Writer
	processor  *batch.Processor
	cleaner    *cleaner.Cleaner
}

// Options overrides the interactive endpoints, mainly for tests. Zero
// values mean stdin/stdout.
type Options struct {
	Prompter prompt.Prompter
	Out      io.Writer
}

// NewContainer creates and wires all application dependencies from the
// configuration. The category dictionary is loaded eagerly so a corrupt
// file surfaces at startup rather than mid-session.
func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	if cfg.CSV.Delimiter != "" {
		bankparser.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}

	categoryStore := store.NewCategoryStore(cfg.Files.Categories, logger)
	if err := categoryStore.Load(); err != nil {
		return nil, fmt.Errorf("failed to load category dictionary: %w", err)
	}

	rules, err := classifier.LoadKeywordRules(cfg.Files.Keywords, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword rules: %w", err)
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = prompt.NewTerminalPrompter(os.Stdin, os.Stdout)
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cl := classifier.New(categoryStore, prompter, rules, logger)
	pipe := pipeline.New(cl, cfg.Categorization.PaymentMarker, logger)
	writer := report.NewWriter(cfg.Files.Workbook, logger)

	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: categoryStore.Len()},
		logging.Field{Key: "keyword_rules", Value: len(rules)},
	).Info("Container initialized successfully")

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      categoryStore,
		prompter:   prompter,
		classifier: cl,
		pipeline:   pipe,
		writer:     writer,
		processor:  batch.NewProcessor(pipe, writer, logger),
		cleaner:    cleaner.New(categoryStore, prompter, logger, out),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetClassifier returns the container's classifier instance.
func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

// GetPipeline returns the container's transaction pipeline instance.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetWriter returns the container's workbook writer instance.
func (c *Container) GetWriter() *report.Writer {
	return c.writer
}

// GetProcessor returns the container's batch processor instance.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetCleaner returns the container's dictionary cleaner instance.
func (c *Container) GetCleaner() *cleaner.Cleaner {
	return c.cleaner
}

// Close flushes pending dictionary changes. It should be called when the
// container is no longer needed.
func (c *Container) Close() error {
	if err := c.store.SaveIfDirty(); err != nil {
		return err
	}
	c.logger.Info("Container closed")
	return nil
}
