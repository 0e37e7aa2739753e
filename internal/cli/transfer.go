package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/ics"
	"github.com/tartampluch/dunbar/internal/persist"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/vcf"
)

func newExportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the dunbar-v1 payload (stdout when no file given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := persist.Encode(app.store.Snapshot(), app.Clock.Now())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(app.Out, string(data))
				return nil
			}
			if err := afero.WriteFile(app.Fs, args[0], data, config.FilePermUserRW); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the current state with a dunbar-v1 payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(app.Fs, args[0])
			if err != nil {
				return err
			}
			st, err := persist.Decode(data)
			if err != nil {
				app.log.Warn(config.MsgImportRejected, config.LogKeyError, err)
				return err
			}
			app.store.Dispatch(store.Load{State: st})
			app.save()
			fmt.Fprintf(app.Out, "imported %d friend(s)\n", len(st.Friends))
			return nil
		},
	}
}

func newCalendarCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "calendar [file]",
		Short: "Export upcoming anniversaries as an iCalendar feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = app.settings.LookaheadDays
			}
			items := derive.UpcomingAnniversaries(app.store.Snapshot(), app.Clock.Now(), days)
			gen := &ics.Generator{Clock: app.Clock, FormatLabel: app.trans.AnnivLabel}
			data, err := gen.Generate(items, app.settings.ReminderTrigger)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprint(app.Out, string(data))
				return nil
			}
			if err := afero.WriteFile(app.Fs, args[0], data, config.FilePermUserRW); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "calendar written to %s (%d item(s))\n", args[0], len(items))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "lookahead window in days")
	return cmd
}

func newImportVCFCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-vcf <file>",
		Short: "Import contacts from a vCard file as friends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := app.Fs.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			n, err := vcf.Import(app.store, f)
			if err != nil {
				return err
			}
			app.save()
			fmt.Fprintf(app.Out, "imported %d contact(s)\n", n)
			return nil
		},
	}
}
