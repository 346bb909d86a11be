package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/subscription-calendar/internal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Params struct {
	Command  string `descr:"What to do" positional:"true" alts:"calendar,list,total,day,show,add,edit,delete,import,export,init" strict:"true"`
	Config   string `descr:"Path to config file (default ~/.subscription-calendar/config.yaml)" optional:"true"`
	Store    string `descr:"Storage location as backend:path, e.g. sqlite:subs.db or memory:" env:"SUBCAL_STORE" optional:"true"`
	Key      string `descr:"Storage key the collection is kept under" optional:"true"`
	Format   string `descr:"Storage format" alts:"json,yaml" optional:"true"`
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Currency string `descr:"Currency code for amounts, e.g. USD (default: detect from locale)" env:"SUBCAL_CURRENCY" optional:"true"`
	Locale   string `descr:"Locale for number formatting, e.g. sv_SE (default: system locale)" env:"SUBCAL_LOCALE" optional:"true"`
	Name     string `descr:"Subscription name (add, edit)" optional:"true"`
	Amount   string `descr:"Monthly amount (add, edit)" optional:"true"`
	Day      string `descr:"Day of month the payment is due, 1-31 (add, edit, day)" optional:"true"`
	ID       string `descr:"Subscription id (edit, delete, show)" name:"id" optional:"true"`
	File     string `descr:"Spreadsheet path (import, export)" optional:"true"`
	Verbose  bool   `descr:"Enable debug logging" optional:"true"`
}

func main() {
	// values from a local .env file act as environment defaults
	_ = godotenv.Load()

	newRootCmd(func(params *Params) {
		log := internal.NewLogger(os.Stderr, params.Verbose)
		if err := run(params, os.Stdout, log, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}).Run()
}

// paramEnrich derives flag names and shorthands from field names. Only
// fields with an explicit env tag read the environment, so a stray NAME or
// DAY variable never fills in a record field.
var paramEnrich = boa.ParamEnricherCombine(
	boa.ParamEnricherName,
	boa.ParamEnricherShort,
	boa.ParamEnricherBool,
)

func newRootCmd(runFunc func(params *Params)) boa.CmdT[Params] {
	return boa.NewCmdT[Params]("subscription-calendar").
		WithShort("Track monthly subscriptions on a calendar").
		WithLong("Keeps a list of recurring monthly payments (name, amount, due day), shows them on a current-month calendar or as a list sorted by due day, and totals the monthly spend.").
		WithParamEnrich(paramEnrich).
		WithRunFunc(runFunc)
}

// session is one CLI invocation: storage is loaded once, one action is
// applied through the editor, and the result is rendered
type session struct {
	params   *Params
	out      io.Writer
	log      zerolog.Logger
	editor   *internal.Editor
	store    *internal.Store
	currency internal.Currency
	now      time.Time
}

func run(params *Params, out io.Writer, log zerolog.Logger, now time.Time) error {
	cfgPath := params.Config
	if cfgPath == "" {
		cfgPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfigOrDefault(cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyStoreArg(params.Store)
	if params.Key != "" {
		cfg.Store.Key = params.Key
	}
	if params.Format != "" {
		cfg.Store.Format = params.Format
	}

	if params.Command == "init" {
		return writeConfig(out, cfgPath, cfg, params)
	}

	persister, kv, err := internal.OpenPersister(cfg.Store.Backend, cfg.Store.Path, cfg.Store.Key, cfg.Store.Format)
	if err != nil {
		return err
	}
	defer kv.Close()

	log.Debug().
		Str("backend", cfg.Store.Backend).
		Str("path", cfg.Store.Path).
		Str("key", cfg.Store.Key).
		Msg("opened storage")

	currency, err := resolveCurrency(params, cfg)
	if err != nil {
		return err
	}

	store := internal.NewStore(persister, log)
	s := &session{
		params:   params,
		out:      out,
		log:      log,
		editor:   internal.NewEditor(store, internal.WithView(initialView(params.Command))),
		store:    store,
		currency: currency,
		now:      now,
	}

	if err := s.dispatch(); err != nil {
		return err
	}
	if err := store.LastSaveError(); err != nil {
		return fmt.Errorf("saving subscriptions: %w", err)
	}
	return nil
}

// initialView maps the command to the view it renders
func initialView(command string) internal.ViewMode {
	if command == "list" {
		return internal.ViewList
	}
	return internal.ViewCalendar
}

// writeConfig saves the effective settings (file values plus flag
// overrides) so later runs need no flags
func writeConfig(out io.Writer, path string, cfg *internal.Config, params *Params) error {
	if path == "" {
		return errors.New("no config path: pass --config")
	}
	if params.Currency != "" {
		cfg.Currency = strings.ToUpper(params.Currency)
	}
	if params.Locale != "" {
		cfg.Locale = params.Locale
	}
	if _, err := internal.ResolveCurrency(cfg.Currency, cfg.Locale); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (store %s:%s, key %s, format %s)\n",
		path, cfg.Store.Backend, cfg.Store.Path, cfg.Store.Key, cfg.Store.Format)
	return nil
}

// resolveCurrency prefers flags over config; empty values fall through to
// locale detection inside ResolveCurrency
func resolveCurrency(params *Params, cfg *internal.Config) (internal.Currency, error) {
	code, locale := params.Currency, params.Locale
	if code == "" {
		code = cfg.Currency
	}
	if locale == "" {
		locale = cfg.Locale
	}
	return internal.ResolveCurrency(code, locale)
}

func (s *session) jsonOutput() bool {
	return s.params.Output == "json"
}

func (s *session) dispatch() error {
	switch s.params.Command {
	case "calendar", "list":
		return s.render()
	case "total":
		return s.total()
	case "day":
		return s.showDay()
	case "show":
		return s.showRecord()
	case "add":
		return s.add()
	case "edit":
		return s.edit()
	case "delete":
		return s.delete()
	case "import":
		return s.importFile()
	case "export":
		return s.exportFile()
	default:
		return fmt.Errorf("unknown command: %s", s.params.Command)
	}
}

func (s *session) render() error {
	switch s.editor.View() {
	case internal.ViewList:
		subs := s.editor.List()
		if s.jsonOutput() {
			return internal.PrintListJSON(s.out, subs, s.currency)
		}
		if len(subs) == 0 {
			fmt.Fprintln(s.out, "No subscriptions yet. Add one with: subscription-calendar add --name NAME --amount AMOUNT --day DAY")
			return nil
		}
		internal.PrintListTable(s.out, subs, s.currency)
	default:
		cal := s.editor.Calendar(s.now)
		if s.jsonOutput() {
			return internal.PrintCalendarJSON(s.out, s.editor.All(), cal, s.currency)
		}
		internal.PrintCalendarTable(s.out, cal, s.currency.FormatDecimal(s.editor.Spend()))
	}
	return nil
}

func (s *session) total() error {
	subs := s.editor.All()
	if s.jsonOutput() {
		return internal.PrintListJSON(s.out, subs, s.currency)
	}
	internal.PrintTotal(s.out, subs, s.currency)
	return nil
}

func (s *session) showDay() error {
	day, err := internal.ParseDay(s.params.Day)
	if err != nil {
		return fmt.Errorf("--day: %w", err)
	}
	s.editor.HoverDay(day)
	return s.popover(fmt.Sprintf("Due on day %d", day))
}

func (s *session) showRecord() error {
	if s.params.ID == "" {
		return errors.New("show requires --id")
	}
	s.editor.HoverRecord(s.params.ID)
	return s.popover("Subscription " + s.params.ID)
}

func (s *session) popover(title string) error {
	entries := s.editor.Popover(s.now)
	if s.jsonOutput() {
		return internal.PrintListJSON(s.out, entries, s.currency)
	}
	internal.PrintPopover(s.out, title, entries, s.currency)
	return nil
}

func (s *session) add() error {
	if err := s.editor.OpenAddForm(); err != nil {
		return err
	}
	fields := []struct {
		field internal.DraftField
		value string
	}{
		{internal.FieldName, s.params.Name},
		{internal.FieldAmount, s.params.Amount},
		{internal.FieldDate, s.params.Day},
	}
	for _, f := range fields {
		if err := s.editor.SetDraftField(f.field, f.value); err != nil {
			return err
		}
	}

	sub, err := s.editor.SubmitAdd()
	if err != nil {
		return fmt.Errorf("not added: %w", err)
	}
	return s.confirm("Added", sub)
}

func (s *session) edit() error {
	if s.params.ID == "" {
		return errors.New("edit requires --id")
	}
	if err := s.editor.BeginEdit(s.params.ID); err != nil {
		return err
	}

	// only fields given on the command line change
	updates := map[internal.DraftField]string{
		internal.FieldName:   s.params.Name,
		internal.FieldAmount: s.params.Amount,
		internal.FieldDate:   s.params.Day,
	}
	for field, value := range updates {
		if value == "" {
			continue
		}
		if err := s.editor.SetEditField(field, value); err != nil {
			return err
		}
	}

	sub, err := s.editor.ConfirmEdit()
	if err != nil {
		s.editor.Cancel()
		return fmt.Errorf("not updated: %w", err)
	}
	return s.confirm("Updated", sub)
}

func (s *session) delete() error {
	if s.params.ID == "" {
		return errors.New("delete requires --id")
	}
	sub, _ := s.store.Get(s.params.ID)
	if !s.editor.Delete(s.params.ID) {
		s.log.Warn().Str("id", s.params.ID).Msg("no subscription with this id, nothing deleted")
		return s.total()
	}
	return s.confirm("Deleted", sub)
}

func (s *session) confirm(verb string, sub internal.Subscription) error {
	if s.jsonOutput() {
		return internal.PrintListJSON(s.out, s.editor.All(), s.currency)
	}
	fmt.Fprintf(s.out, "%s %s (%s, due day %d) [%s]\n",
		verb, sub.Name, s.currency.FormatDecimal(sub.Amount), sub.Date, sub.ID)
	internal.PrintTotal(s.out, s.editor.All(), s.currency)
	return nil
}

func (s *session) importFile() error {
	if s.params.File == "" {
		return errors.New("import requires --file")
	}
	rows, err := internal.ReadXLSX(s.params.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.params.File, err)
	}

	added := 0
	for _, row := range rows {
		if _, err := s.editor.AddWithColor(row.Draft, row.Color); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping row %d: %v\n", row.Row, err)
			continue
		}
		added++
	}

	if s.jsonOutput() {
		return internal.PrintListJSON(s.out, s.editor.All(), s.currency)
	}
	fmt.Fprintf(s.out, "Imported %d of %d rows from %s\n", added, len(rows), s.params.File)
	internal.PrintTotal(s.out, s.editor.All(), s.currency)
	return nil
}

func (s *session) exportFile() error {
	if s.params.File == "" {
		return errors.New("export requires --file")
	}
	subs := s.editor.All()
	if err := internal.ExportXLSX(s.params.File, subs); err != nil {
		return fmt.Errorf("exporting to %s: %w", s.params.File, err)
	}
	fmt.Fprintf(s.out, "Exported %d subscriptions to %s\n", len(subs), s.params.File)
	return nil
}
