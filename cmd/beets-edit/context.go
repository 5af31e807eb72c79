package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"beetsedit/internal/config"
	"beetsedit/internal/logging"
)

// runIDEnv carries the parent run id into the editor processes beets spawns.
const runIDEnv = "BEETS_EDIT_RUN_ID"

type commandContext struct {
	verbosity  *int
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	created    bool
	configErr  error

	runIDOnce sync.Once
	runID     string
}

func newCommandContext(verbosity *int, configFlag *string) *commandContext {
	return &commandContext{
		verbosity:  verbosity,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, created, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.created = created
	})
	return c.config, c.configErr
}

func (c *commandContext) verbosityLevel() int {
	if c.verbosity == nil {
		return 0
	}
	return *c.verbosity
}

// currentRunID reuses the parent's run id when invoked as an editor.
func (c *commandContext) currentRunID() string {
	c.runIDOnce.Do(func() {
		if inherited := strings.TrimSpace(os.Getenv(runIDEnv)); inherited != "" {
			c.runID = inherited
			return
		}
		c.runID = uuid.NewString()
	})
	return c.runID
}

// newLogger builds the command's logger. Callers defer the returned close
// func so the log file is released when the command returns.
func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	var output io.Writer = os.Stderr
	if cmd != nil {
		output = cmd.ErrOrStderr()
	}
	return logging.New(logging.Options{
		Verbosity: c.verbosityLevel(),
		Format:    cfg.Logging.Format,
		FilePath:  cfg.Logging.File,
		Output:    output,
		RunID:     c.currentRunID(),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
