package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"MismatchScanner/internal/domain"
	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const probabilityColumn = "mismatch_probability"

var articleColumns = []string{
	"id", "title", "body", "media", "published_at",
	"like_count", "comment_count", "url", probabilityColumn,
}

// SQLStore implements ports.ArticleStore over one or more partition tables
// that together hold the corpus. Reads concatenate partitions in configured
// order; updates address every partition since ids are corpus-unique.
type SQLStore struct {
	db      *sql.DB
	driver  string
	tables  []string
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var _ ports.ArticleStore = (*SQLStore)(nil)

// Open connects to the configured database.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY inside bulk updates.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// NewSQLStore wires a sql.DB implementation.
func NewSQLStore(db *sql.DB, driver string, tables []string, logger *slog.Logger) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("sql store requires a database handle")
	}
	if len(tables) == 0 {
		return nil, errors.New("sql store requires at least one table")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}

	return &SQLStore{
		db:      db,
		driver:  driver,
		tables:  append([]string(nil), tables...),
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		logger:  logger,
	}, nil
}

// EnsureSchema creates missing partition tables.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	probType := "REAL"
	if s.driver == DriverPostgres {
		probType = "DOUBLE PRECISION"
	}

	for _, table := range s.tables {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			media TEXT NOT NULL DEFAULT '',
			published_at TEXT,
			like_count INTEGER NOT NULL DEFAULT 0,
			comment_count INTEGER NOT NULL DEFAULT 0,
			url TEXT NOT NULL DEFAULT '',
			%s %s
		)`, pq.QuoteIdentifier(table), probabilityColumn, probType)

		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}

// InsertArticles upserts ingestion records into one partition, keeping any
// probability already stored.
func (s *SQLStore) InsertArticles(ctx context.Context, table string, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	insert := s.builder.Insert(pq.QuoteIdentifier(table)).Columns(articleColumns...)
	for _, a := range articles {
		if _, err := uuid.Parse(a.ID); err != nil {
			return fmt.Errorf("article %q: %w", a.ID, domain.ErrInvalidID)
		}
		var published any
		if a.PublishedAt != "" {
			published = a.PublishedAt
		}
		var prob any
		if a.MismatchProbability != nil {
			prob = *a.MismatchProbability
		}
		insert = insert.Values(a.ID, a.Title, a.Body, a.Media, published,
			a.LikeCount, a.CommentCount, a.URL, prob)
	}
	insert = insert.Suffix(`ON CONFLICT (id) DO UPDATE SET
		title = excluded.title,
		body = excluded.body,
		media = excluded.media,
		published_at = excluded.published_at,
		like_count = excluded.like_count,
		comment_count = excluded.comment_count,
		url = excluded.url`)

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert articles into %s: %w", table, err)
	}
	return nil
}

// ListUnscored returns articles without a probability. limit <= 0 means no cap.
func (s *SQLStore) ListUnscored(ctx context.Context, limit int) ([]domain.Article, error) {
	var out []domain.Article
	for _, table := range s.tables {
		q := s.builder.Select("id", "title", "body").
			From(pq.QuoteIdentifier(table)).
			Where(sq.Eq{probabilityColumn: nil}).
			OrderBy("id")
		if limit > 0 {
			remaining := limit - len(out)
			if remaining <= 0 {
				break
			}
			q = q.Limit(uint64(remaining))
		}

		rows, err := s.query(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("list unscored in %s: %w", table, err)
		}
		batch, err := scanRows(rows, func(r *sql.Rows) (domain.Article, error) {
			var a domain.Article
			err := r.Scan(&a.ID, &a.Title, &a.Body)
			return a, err
		})
		if err != nil {
			return nil, fmt.Errorf("list unscored in %s: %w", table, err)
		}
		out = append(out, batch...)
	}

	s.logger.InfoContext(ctx, "selected unscored articles", "count", len(out))
	return out, nil
}

// ListAll loads the full corpus snapshot.
func (s *SQLStore) ListAll(ctx context.Context) ([]domain.Article, error) {
	var out []domain.Article
	for _, table := range s.tables {
		q := s.builder.Select(articleColumns...).From(pq.QuoteIdentifier(table)).OrderBy("id")
		rows, err := s.query(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("list all in %s: %w", table, err)
		}
		batch, err := scanRows(rows, scanArticle)
		if err != nil {
			return nil, fmt.Errorf("list all in %s: %w", table, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// FindByID looks the article up in every partition.
func (s *SQLStore) FindByID(ctx context.Context, id string) (domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Article{}, fmt.Errorf("find %q: %w", id, domain.ErrInvalidID)
	}

	for _, table := range s.tables {
		q := s.builder.Select(articleColumns...).From(pq.QuoteIdentifier(table)).Where(sq.Eq{"id": id})
		rows, err := s.query(ctx, q)
		if err != nil {
			return domain.Article{}, fmt.Errorf("find %s in %s: %w", id, table, err)
		}
		batch, err := scanRows(rows, scanArticle)
		if err != nil {
			return domain.Article{}, fmt.Errorf("find %s in %s: %w", id, table, err)
		}
		if len(batch) > 0 {
			return batch[0], nil
		}
	}
	return domain.Article{}, fmt.Errorf("find %s: %w", id, domain.ErrNotFound)
}

// BulkSetProbability applies all pairs in one transaction and returns the
// number of documents whose probability changed. Unparseable ids, ids missing
// from every partition and rewrites of the stored value count for nothing.
func (s *SQLStore) BulkSetProbability(ctx context.Context, pairs []domain.ScoredPair) (int, error) {
	valid := make([]domain.ScoredPair, 0, len(pairs))
	for _, p := range pairs {
		if _, err := uuid.Parse(p.ID); err != nil {
			s.logger.WarnContext(ctx, "skipping pair with unparseable id", "article_id", p.ID, "error", err)
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		s.logger.WarnContext(ctx, "no documents to update in batch")
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	modified := 0
	for _, p := range valid {
		affected := 0
		for _, table := range s.tables {
			query, args, err := s.builder.Update(pq.QuoteIdentifier(table)).
				Set(probabilityColumn, p.Probability).
				Where(sq.Eq{"id": p.ID}).
				Where(sq.Expr(probabilityColumn+" IS DISTINCT FROM ?", p.Probability)).
				ToSql()
			if err != nil {
				return 0, fmt.Errorf("build update: %w", err)
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return 0, fmt.Errorf("update %s in %s: %w", p.ID, table, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return 0, fmt.Errorf("rows affected: %w", err)
			}
			affected += int(n)
		}
		if affected == 0 {
			s.logger.WarnContext(ctx, "document missing or unchanged at flush time", "article_id", p.ID)
		}
		modified += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk update: %w", err)
	}

	s.logger.InfoContext(ctx, "bulk update committed", "pairs", len(pairs), "modified", modified)
	return modified, nil
}

// Total counts every article across partitions.
func (s *SQLStore) Total(ctx context.Context) (int, error) {
	return s.count(ctx, nil)
}

// CountWithProbability counts scored articles across partitions.
func (s *SQLStore) CountWithProbability(ctx context.Context) (int, error) {
	return s.count(ctx, sq.NotEq{probabilityColumn: nil})
}

func (s *SQLStore) count(ctx context.Context, pred sq.Sqlizer) (int, error) {
	total := 0
	for _, table := range s.tables {
		q := s.builder.Select("COUNT(*)").From(pq.QuoteIdentifier(table))
		if pred != nil {
			q = q.Where(pred)
		}
		query, args, err := q.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build count: %w", err)
		}
		var n int
		if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

func (s *SQLStore) query(ctx context.Context, q sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

func scanRows(rows *sql.Rows, scan func(*sql.Rows) (domain.Article, error)) ([]domain.Article, error) {
	var out []domain.Article
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}
	return out, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var (
		a         domain.Article
		published sql.NullString
		prob      sql.NullFloat64
	)
	err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Media, &published,
		&a.LikeCount, &a.CommentCount, &a.URL, &prob)
	if err != nil {
		return domain.Article{}, err
	}

	a.PublishedAt = strings.TrimSpace(published.String)
	if prob.Valid {
		p := prob.Float64
		a.MismatchProbability = &p
	}
	if a.LikeCount < 0 {
		a.LikeCount = 0
	}
	if a.CommentCount < 0 {
		a.CommentCount = 0
	}
	return a, nil
}
