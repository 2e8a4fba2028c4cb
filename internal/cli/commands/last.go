package commands

import (
	"github.com/spf13/cobra"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/storage"
	"github.com/omkarkhatavkar/pytest-picked/internal/ui"
)

// LastCommand handles the last command
type LastCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewLastCommand creates a new LastCommand
func NewLastCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *LastCommand {
	return &LastCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *LastCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := lc.storage.Load()
	if err != nil {
		return err
	}

	lc.formatter.PrintAffected(report.Affected)
	lc.formatter.PrintRunStats(*report)
	return nil
}
