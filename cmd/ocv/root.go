package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/config"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/ui"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	var sf scopeFlags

	cmd := &cobra.Command{
		Use:           "ocv",
		Short:         "Browse an organization directory as an org chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DataPath == "" {
				return withCode(exitUsage, fmt.Errorf("no directory file: pass --data or set OCV_DATA"))
			}
			if err := sf.validRegion(); err != nil {
				return err
			}
			records, err := a.records()
			if err != nil {
				return err
			}
			m := ui.NewModel(ui.Options{
				DataPath:  a.cfg.DataPath,
				Records:   records,
				Scope:     sf.scope(a.cfg.Scope),
				Region:    sf.region,
				Mode:      a.cfg.Mode,
				NodeWidth: a.cfg.NodeWidth,
				Admin:     a.cfg.Admin,
				Policies:  a.cfg.Policies,
				Ranks:     a.cfg.Ranks(),
				ExportDir: a.cfg.ExportDir,
				Watch:     a.cfg.Watch,
				Debounce:  a.cfg.Debounce,
				Log:       a.log,
			})
			defer m.Stop()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running org chart: %w", err)
			}
			return nil
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "Config file (default ./"+config.DefaultFile+")")
	f.StringVar(&a.dataPath, "data", "", "Directory file (.json, .jsonl, .csv, .xlsx, .db)")
	f.StringVar(&a.logFile, "log-file", "", "Write logs to this file")
	sf.bind(cmd)

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newScopesCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}
