package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/logger"
	"github.com/cryptoprivacy/storefront-api/internal/pkg/storage"
)

const exportContentType = "text/csv; charset=utf-8"

// Service owns ledger reads and admin view sessions.
type Service struct {
	repo     Repository
	sessions SessionStore
	archive  storage.Storage
	loc      *time.Location
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithArchive stores a copy of every export.
func WithArchive(s storage.Storage) Option {
	return func(svc *Service) { svc.archive = s }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService creates the ledger service. defaultTimezone is used for
// sessions mounted without one; empty means the server's local zone.
func NewService(repo Repository, sessions SessionStore, defaultTimezone string, opts ...Option) (*Service, error) {
	loc := time.Local
	if defaultTimezone != "" {
		l, err := time.LoadLocation(defaultTimezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, defaultTimezone)
		}
		loc = l
	}

	svc := &Service{
		repo:     repo,
		sessions: sessions,
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// FetchAll is the raw ledger read.
func (s *Service) FetchAll(ctx context.Context) ([]TransactionRecord, error) {
	return s.repo.FetchAll(ctx)
}

// Mount opens a view session: one store read, then everything else works on
// the held record set. A failed read is logged and yields an empty ledger.
func (s *Service) Mount(ctx context.Context, timezone string) (*Session, RenderModel, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return nil, RenderModel{}, err
	}

	records, err := s.repo.FetchAll(ctx)
	if err != nil {
		l := logger.FromContext(ctx).Error().Err(err)
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			l = l.Str("store_message", storeErr.Message)
		}
		l.Msg("Error fetching admin transactions")
		records = []TransactionRecord{}
	}

	sess := &Session{
		ID:        uuid.New().String(),
		Records:   records,
		Page:      1,
		Timezone:  timezone,
		Loaded:    true,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, RenderModel{}, err
	}

	logger.FromContext(ctx).Info().
		Str("session_id", sess.ID).
		Int("records", len(records)).
		Msg("Ledger session mounted")

	return sess, sess.View(loc), nil
}

// Get renders an existing session.
func (s *Service) Get(ctx context.Context, id string) (RenderModel, error) {
	return s.update(ctx, id, nil)
}

// SetFilters replaces the filter and resets to page 1.
func (s *Service) SetFilters(ctx context.Context, id string, f FilterState) (RenderModel, error) {
	return s.update(ctx, id, func(sess *Session) { sess.SetFilter(f) })
}

// Next moves one page forward.
func (s *Service) Next(ctx context.Context, id string) (RenderModel, error) {
	return s.update(ctx, id, (*Session).Next)
}

// Previous moves one page back.
func (s *Service) Previous(ctx context.Context, id string) (RenderModel, error) {
	return s.update(ctx, id, (*Session).Previous)
}

// SetPage jumps to page, clamped.
func (s *Service) SetPage(ctx context.Context, id string, page int) (RenderModel, error) {
	return s.update(ctx, id, func(sess *Session) { sess.SetPage(page) })
}

// Export is a generated CSV file.
type Export struct {
	Filename string
	Rows     int
	Data     []byte
}

// Export serialises the session's filtered set, not only the current page.
func (s *Service) Export(ctx context.Context, id string) (*Export, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	loc, err := s.location(sess.Timezone)
	if err != nil {
		return nil, err
	}

	filtered := sess.Filtered()
	var buf bytes.Buffer
	if err := ExportCSV(&buf, filtered, loc); err != nil {
		return nil, err
	}

	exp := &Export{
		Filename: ExportFilename(s.now()),
		Rows:     len(filtered),
		Data:     buf.Bytes(),
	}
	s.archiveExport(ctx, exp)
	return exp, nil
}

// Unmount releases the session's record set.
func (s *Service) Unmount(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *Service) update(ctx context.Context, id string, mutate func(*Session)) (RenderModel, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return RenderModel{}, err
	}
	loc, err := s.location(sess.Timezone)
	if err != nil {
		return RenderModel{}, err
	}

	if mutate != nil {
		mutate(sess)
		if err := s.sessions.Save(ctx, sess); err != nil {
			return RenderModel{}, err
		}
	}
	return sess.View(loc), nil
}

func (s *Service) location(timezone string) (*time.Location, error) {
	if timezone == "" {
		return s.loc, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, timezone)
	}
	return loc, nil
}

// archiveExport never fails the download; errors are only logged.
func (s *Service) archiveExport(ctx context.Context, exp *Export) {
	if s.archive == nil {
		return
	}
	key := path.Join("ledger", s.now().UTC().Format("2006/01/02"), exp.Filename)
	if ok, err := s.archive.Exists(ctx, key); err == nil && ok {
		logger.FromContext(ctx).Debug().Str("key", key).Msg("Ledger export already archived")
		return
	}
	if err := s.archive.Put(ctx, key, bytes.NewReader(exp.Data), exportContentType); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("key", key).Msg("Failed to archive ledger export")
		return
	}
	logger.FromContext(ctx).Info().
		Str("url", s.archive.GetURL(key)).
		Int("rows", exp.Rows).
		Msg("Ledger export archived")
}
