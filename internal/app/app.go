package app

import (
	"context"
	"fmt"
	"log"

	"report-pad/internal/notes"
	"report-pad/internal/runner"
	"report-pad/internal/ui"
	"report-pad/shared/analytics"
	"report-pad/shared/auth"
	"report-pad/shared/config"
	"report-pad/shared/housekeeping"
	"report-pad/shared/monitoring"
)

// autosaveSchedule flushes the open note once a minute. Housekeeping only;
// it never touches report state.
const autosaveSchedule = "@every 1m"

// Options configure the application.
type Options struct {
	SettingsPath string
	NotePath     string
}

// Run wires the collaborators together and boots the UI until the context
// is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	doc, err := notes.Open(opts.NotePath)
	if err != nil {
		return fmt.Errorf("failed to open note: %w", err)
	}

	monitor := monitoring.NewMonitor()
	r := runner.New(settings, doc, auth.KeyfileAuthorizer{}, analytics.Client{}, monitor)

	ticker := housekeeping.New()
	if err := ticker.Add(autosaveSchedule, "autosave", doc.Save); err != nil {
		return fmt.Errorf("failed to schedule autosave: %w", err)
	}
	ticker.Start(ctx)

	log.Printf("Report Pad started (note: %s, settings: %s)", opts.NotePath, opts.SettingsPath)

	if err := ui.Run(ui.Options{
		Context:      ctx,
		Doc:          doc,
		Runner:       r,
		Monitor:      monitor,
		Settings:     settings,
		SettingsPath: opts.SettingsPath,
	}); err != nil {
		return err
	}

	// Flush any unsaved edits on the way out.
	if err := doc.Save(); err != nil {
		return fmt.Errorf("failed to save note on exit: %w", err)
	}
	return nil
}
