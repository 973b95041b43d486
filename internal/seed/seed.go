// Package seed bulk-loads CSV fixtures into the relational store and
// resynchronizes the identity sequences afterwards, so that rows loaded
// with explicit ids do not collide with subsequently created ones.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bookledger/library-api/internal/log"
)

// Table describes one CSV fixture and how its string records map onto
// typed column values.
type Table struct {
	Name    string
	CSVFile string
	Columns []string
	convert func(record []string) ([]any, error)
}

// Tables lists the fixtures in dependency order; books references
// authors and book_readers references both books and readers.
var Tables = []Table{
	{
		Name:    "authors",
		CSVFile: "authors.csv",
		Columns: []string{"author_id", "first_name", "last_name", "nationality"},
		convert: func(rec []string) ([]any, error) {
			id, err := strconv.ParseInt(rec[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("author_id %q: %w", rec[0], err)
			}
			return []any{id, rec[1], rec[2], rec[3]}, nil
		},
	},
	{
		Name:    "books",
		CSVFile: "books.csv",
		Columns: []string{"book_id", "title", "publication_year", "category", "author_id"},
		convert: func(rec []string) ([]any, error) {
			id, err := strconv.ParseInt(rec[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("book_id %q: %w", rec[0], err)
			}
			year, err := time.Parse("2006-01-02", rec[2])
			if err != nil {
				return nil, fmt.Errorf("publication_year %q: %w", rec[2], err)
			}
			var authorID any
			if rec[4] != "" {
				v, err := strconv.ParseInt(rec[4], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("author_id %q: %w", rec[4], err)
				}
				authorID = v
			}
			return []any{id, rec[1], year, rec[3], authorID}, nil
		},
	},
	{
		Name:    "readers",
		CSVFile: "readers.csv",
		Columns: []string{"reader_id", "first_name", "last_name", "email"},
		convert: func(rec []string) ([]any, error) {
			id, err := strconv.ParseInt(rec[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("reader_id %q: %w", rec[0], err)
			}
			return []any{id, rec[1], rec[2], rec[3]}, nil
		},
	},
	{
		Name:    "book_readers",
		CSVFile: "book_readers.csv",
		Columns: []string{"book_id", "reader_id"},
		convert: func(rec []string) ([]any, error) {
			bookID, err := strconv.ParseInt(rec[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("book_id %q: %w", rec[0], err)
			}
			readerID, err := strconv.ParseInt(rec[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("reader_id %q: %w", rec[1], err)
			}
			return []any{bookID, readerID}, nil
		},
	},
}

const createScript = `
DO $$ BEGIN
    CREATE TYPE NATIONALITY AS ENUM ('Russian', 'American', 'British', 'French', 'German');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$;

DO $$ BEGIN
    CREATE TYPE BOOK_CATEGORY AS ENUM ('Fiction', 'Non-fiction', 'Science', 'History', 'Fantasy');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$;

CREATE TABLE IF NOT EXISTS authors (
    author_id SERIAL PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    nationality NATIONALITY NOT NULL
);

CREATE TABLE IF NOT EXISTS books (
    book_id SERIAL PRIMARY KEY,
    title VARCHAR(50) UNIQUE NOT NULL,
    publication_year DATE NOT NULL,
    category BOOK_CATEGORY NOT NULL,
    author_id INT,
    CONSTRAINT fk_author FOREIGN KEY (author_id) REFERENCES authors (author_id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS readers (
    reader_id SERIAL PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    CONSTRAINT valid_email CHECK (
        email ~* '^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$'
    )
);

CREATE TABLE IF NOT EXISTS book_readers (
    book_id INT,
    reader_id INT,
    CONSTRAINT fk_book FOREIGN KEY (book_id) REFERENCES books (book_id) ON DELETE CASCADE,
    CONSTRAINT fk_reader FOREIGN KEY (reader_id) REFERENCES readers (reader_id) ON DELETE CASCADE,
    PRIMARY KEY (book_id, reader_id)
);
`

const syncScript = `
SELECT setval('authors_author_id_seq', (SELECT COALESCE(MAX(author_id), 0) FROM authors));
SELECT setval('books_book_id_seq', (SELECT COALESCE(MAX(book_id), 0) FROM books));
SELECT setval('readers_reader_id_seq', (SELECT COALESCE(MAX(reader_id), 0) FROM readers));
`

// EnsureSchema creates the enum types and tables when they do not exist
// yet. The statements are idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createScript); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load imports every fixture from dir inside one transaction and then
// resynchronizes the sequences. A missing CSV file aborts the whole
// load.
func Load(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	if err := EnsureSchema(ctx, pool); err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range Tables {
		path := filepath.Join(dir, table.CSVFile)
		n, err := copyTable(ctx, tx, table, path)
		if err != nil {
			return fmt.Errorf("load %s: %w", table.Name, err)
		}
		log.Info("fixture loaded",
			zap.String("table", table.Name),
			zap.String("file", path),
			zap.Int64("rows", n),
		)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return SyncSequences(ctx, pool)
}

// SyncSequences moves every identity sequence past the highest id
// currently in its table.
func SyncSequences(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, syncScript); err != nil {
		return fmt.Errorf("sync sequences: %w", err)
	}
	return nil
}

func copyTable(ctx context.Context, tx pgx.Tx, table Table, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(table.Columns)

	// Skip the header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}

	var rows [][]any
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		values, err := table.convert(rec)
		if err != nil {
			return 0, err
		}
		rows = append(rows, values)
	}

	return tx.CopyFrom(ctx, pgx.Identifier{table.Name}, table.Columns, pgx.CopyFromRows(rows))
}
