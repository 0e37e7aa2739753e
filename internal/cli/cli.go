// Package cli assembles the cobra command tree around the engine: store
// mutations, derived views, search, transfer and demo seeding. Every command
// works against the configured data file and saves after each mutation.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/derive"
	"github.com/tartampluch/dunbar/internal/i18n"
	"github.com/tartampluch/dunbar/internal/persist"
	"github.com/tartampluch/dunbar/internal/store"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// App carries the wired dependencies of the command tree. Clock, Fs and Out
// are injectable so tests can run commands against a fixed instant and an
// in-memory filesystem.
type App struct {
	Clock timeutil.Clock
	Fs    afero.Fs
	Out   io.Writer

	settings config.Settings
	store    *store.Store
	kv       persist.KV
	dataKey  string
	trans    *i18n.Translator
	log      *slog.Logger
}

// NewRootCommand builds the full command tree. Configuration is resolved in
// the persistent pre-run so flags registered on the root apply to every
// subcommand.
func NewRootCommand(app *App) *cobra.Command {
	var cfgPath, dataFile, lang string

	root := &cobra.Command{
		Use:           "dunbar",
		Short:         "Relationship navigator: friends, shared events and what comes up next",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cfgPath, dataFile, lang)
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "settings file (YAML)")
	root.PersistentFlags().StringVar(&dataFile, "data", "", "data file path (overrides settings)")
	root.PersistentFlags().StringVar(&lang, "lang", "", "output language (overrides settings)")

	root.AddCommand(
		newFriendCommand(app),
		newEventCommand(app),
		newStatsCommand(app),
		newOrbitsCommand(app),
		newUpcomingCommand(app),
		newSearchCommand(app),
		newKeywordsCommand(app),
		newExportCommand(app),
		newImportCommand(app),
		newCalendarCommand(app),
		newImportVCFCommand(app),
		newDemoCommand(app),
	)
	return root
}

func (app *App) setup(cfgPath, dataFile, lang string) error {
	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return err
	}
	if dataFile != "" {
		settings.DataFile = dataFile
	}
	if lang != "" {
		settings.Language = lang
	}
	app.settings = settings

	app.log = slog.With(config.LogKeyComponent, config.CompCLI)
	app.store = store.New(app.Clock)
	app.kv = persist.NewFileKV(app.Fs, filepath.Dir(settings.DataFile))
	app.dataKey = filepath.Base(settings.DataFile)
	app.trans = i18n.New(settings.Language)

	st, err := persist.LoadState(app.kv, app.dataKey)
	switch {
	case err == nil:
		app.store.Dispatch(store.Load{State: st})
	case persist.IsNotExist(err):
		// First run, start empty.
	default:
		return err
	}
	return nil
}

// save persists the current snapshot. Persistence failures never lose the
// in-memory state; they are reported and the command still succeeds.
func (app *App) save() {
	if err := persist.SaveState(app.kv, app.dataKey, app.store.Snapshot(), app.Clock.Now()); err != nil {
		app.log.Warn(config.MsgSaveFailed, config.LogKeyError, err)
	}
}

// dispatch applies an action and saves on success. Rejected actions surface
// as a printed notice, not an error: validation no-ops are part of the
// contract.
func (app *App) dispatch(a store.Action) bool {
	if !app.store.Dispatch(a) {
		fmt.Fprintln(app.Out, "no change (invalid or unknown target)")
		return false
	}
	app.save()
	return true
}

// timeDateYMD is "today" in the configured timezone, as a date-only string.
func timeDateYMD(app *App) string {
	return timeutil.DayKey(app.Clock.Now(), app.settings.Location())
}

// resolveFriend finds a friend by exact id, then by case-insensitive name.
func resolveFriend(st store.State, ref string) (*store.Friend, error) {
	if f := st.Friend(ref); f != nil {
		return f, nil
	}
	for _, f := range st.Friends {
		if strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown friend %q", ref)
}

// eventValues copies event pointers into values for the derive helpers.
func eventValues(evs []*store.Event) []store.Event {
	out := make([]store.Event, 0, len(evs))
	for _, ev := range evs {
		out = append(out, *ev)
	}
	return out
}

// resolveEvent finds an event by exact id, then by its listing slug.
func resolveEvent(st store.State, ref string) (*store.Event, error) {
	if ev := st.Event(ref); ev != nil {
		return ev, nil
	}
	for _, ev := range st.Events {
		if derive.EventSlug(ev.Title, ev.ID) == ref {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("unknown event %q", ref)
}
