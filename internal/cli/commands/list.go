package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omkarkhatavkar/pytest-picked/internal/config"
	"github.com/omkarkhatavkar/pytest-picked/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	selector  *Selector
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, selector *Selector, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		selector:  selector,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	affected, err := lc.selector.Select(commandContext(cmd))
	if err != nil {
		return err
	}

	if affected.Empty() {
		color.Yellow("No affected tests found")
		return nil
	}

	return lc.formatter.PrintTestList(affected, lc.config.Flags.TestCases, lc.config.Flags.ExpandFolders)
}
