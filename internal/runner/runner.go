package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"report-pad/internal/models"
	"report-pad/internal/notes"
	"report-pad/shared/auth"
	"report-pad/shared/config"
	"report-pad/shared/monitoring"
	"report-pad/shared/report"
)

// ErrNotConfigured is surfaced when no OAuth2 key file location is set.
var ErrNotConfigured = errors.New("OAuth2 key file location is not configured")

// ErrBusy rejects a trigger while a report run is already in flight.
var ErrBusy = errors.New("a report run is already in progress")

// InvalidPathError names a configured key file location that does not
// exist on disk.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("OAuth2 key file location does not exist: %s", e.Path)
}

// ValidationError carries the combined violation lines for an invalid
// options record.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthorizationError wraps a failure from the authorization collaborator.
type AuthorizationError struct {
	Err error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed: %v", e.Err)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// QueryError wraps a failure from the query collaborator, including an
// authorization that expired mid-flight.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("report query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Authorizer is the external authorization collaborator.
type Authorizer interface {
	Authorize(ctx context.Context, keyfilePath string) (*oauth2.Token, error)
}

// Querier is the external query collaborator.
type Querier interface {
	Query(ctx context.Context, tok *oauth2.Token, opts models.ReportOptions) (*models.AnalyticsReport, error)
}

// Runner owns the process-wide report state: the cached credential and
// the sticky last-used options. It coordinates one report round trip at a
// time; a second trigger while one is in flight gets ErrBusy.
type Runner struct {
	settings   *config.Settings
	doc        *notes.Document
	authorizer Authorizer
	querier    Querier
	monitor    *monitoring.Monitor

	mu       sync.Mutex
	running  bool
	token    *oauth2.Token
	lastOpts models.ReportOptions

	now func() time.Time
}

func New(settings *config.Settings, doc *notes.Document, authorizer Authorizer, querier Querier, monitor *monitoring.Monitor) *Runner {
	return &Runner{
		settings:   settings,
		doc:        doc,
		authorizer: authorizer,
		querier:    querier,
		monitor:    monitor,
		lastOpts:   models.DefaultReportOptions(time.Now()),
		now:        time.Now,
	}
}

// Options returns the last-used options record, the seed for the form.
func (r *Runner) Options() models.ReportOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastOpts
}

// RememberOptions stores a submitted options record unconditionally, valid
// or not, so the next form starts from the last-entered values.
func (r *Runner) RememberOptions(opts models.ReportOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOpts = opts
}

// SetKeyfileLocation replaces the configured key file location. The
// settings prompt calls this instead of writing the settings record
// directly, so a report run reading the location mid-flight never races
// the update.
func (r *Runner) SetKeyfileLocation(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings.OAuth2KeysLocation = path
}

// KeyfileLocation returns the currently configured key file location.
func (r *Runner) KeyfileLocation() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.OAuth2KeysLocation
}

// CheckReady gates a report trigger before the form opens: the key file
// location must be configured and must exist on disk.
func (r *Runner) CheckReady() error {
	path := r.KeyfileLocation()
	if path == "" {
		return ErrNotConfigured
	}
	if _, err := os.Stat(path); err != nil {
		return &InvalidPathError{Path: path}
	}
	return nil
}

// Submit handles a form submission: the options are cached first, then
// validated, and only a fully valid record runs a report. cursor is the
// note line the formatted report is inserted at.
func (r *Runner) Submit(ctx context.Context, opts models.ReportOptions, cursor int) error {
	r.RememberOptions(opts)

	if res := report.Validate(opts); !res.Valid {
		return &ValidationError{Message: res.Message}
	}
	return r.Run(ctx, opts, cursor)
}

// Run executes one report round trip: refresh the credential if the cached
// one is stale, query, format, insert. The note is only touched after a
// fully successful format; no step is retried.
func (r *Runner) Run(ctx context.Context, opts models.ReportOptions, cursor int) error {
	if !r.begin() {
		return ErrBusy
	}
	defer r.end()

	start := r.now()
	err := r.run(ctx, opts, cursor)
	if err != nil {
		r.monitor.RecordFailure(err, r.now().Sub(start))
		return err
	}
	r.monitor.RecordSuccess(
		fmt.Sprintf("video %s, %s..%s", opts.VideoID, opts.StartDate, opts.EndDate),
		r.now().Sub(start))
	return nil
}

func (r *Runner) run(ctx context.Context, opts models.ReportOptions, cursor int) error {
	if auth.NeedsReauth(r.cachedToken(), r.now()) {
		log.Println("Cached credential is stale, re-authorizing...")
		tok, err := r.authorizer.Authorize(ctx, r.KeyfileLocation())
		if err != nil {
			return &AuthorizationError{Err: err}
		}
		r.setToken(tok)
	}

	rep, err := r.querier.Query(ctx, r.cachedToken(), opts)
	if err != nil {
		return &QueryError{Err: err}
	}

	text, err := report.Format(rep)
	if err != nil {
		return err
	}

	// A zero-row report formats to nothing; leave the note untouched.
	if text != "" {
		r.doc.InsertAt(cursor, text)
	}
	return nil
}

func (r *Runner) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

func (r *Runner) cachedToken() *oauth2.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// setToken replaces the cached credential wholesale.
func (r *Runner) setToken(tok *oauth2.Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = tok
}
