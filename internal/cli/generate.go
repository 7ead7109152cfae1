package cli

import (
	"github.com/spf13/cobra"

	"github.com/syssam/strata/compiler/gen"
	"github.com/syssam/strata/compiler/load"
	"github.com/syssam/strata/compiler/schema"
	"github.com/syssam/strata/internal/config"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Compile the definition files and write the generated code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, cfg)
		},
	}
}

// runGenerate parses every file matched by the schema glob and writes
// the generated package. Non-critical diagnostics are logged and
// generation proceeds; critical ones abort.
func runGenerate(cmd *cobra.Command, cfg *config.Config) error {
	s, diags, err := load.Parse(cfg.Schema)
	if err != nil {
		return err
	}
	for _, d := range diags {
		switch d.Severity {
		case schema.SeverityWarning:
			logger.Warn(d.Message, "kind", d.Kind.String(), "offset", d.Offset)
		default:
			logger.Error(d.Message, "kind", d.Kind.String(), "offset", d.Offset)
		}
	}

	g, err := gen.NewGenerator(gen.Config{
		Package:  cfg.Package,
		OutDir:   cfg.OutDir,
		TextTime: cfg.Datetime == config.DatetimeText,
	}, s, diags)
	if err != nil {
		return err
	}
	w := gen.NewWriter(g)
	if err := w.Generate(cmd.Context()); err != nil {
		return err
	}
	m := w.Metrics()
	logger.Info("generated", "files", m.FilesGenerated, "bytes", m.TotalBytes, "dir", cfg.OutDir)
	return nil
}
