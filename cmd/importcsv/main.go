// importcsv seeds the database from fixed-schema CSV exports. It is a
// one-shot offline tool: rows are validated column by column and loaded in
// foreign-key order, and already-present IDs are skipped.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	dbURL   string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "importcsv",
	Short: "Bulk-import catalog, user and review data from CSV files",
	Long: `Load a data dump into the database. Expects the following files in
--data-dir, imported in this order to satisfy foreign keys:

  category.csv     id,name,slug
  genre.csv        id,name,slug
  titles.csv       id,name,year,category
  genre_title.csv  id,title_id,genre_id
  users.csv        id,username,email,role,bio,first_name,last_name
  review.csv       id,title_id,text,author,score,pub_date
  comments.csv     id,review_id,text,author,pub_date

Each file must carry a header row. Rows whose primary key already exists
are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db", "", "Database connection URL (required)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Directory containing the CSV files")
	_ = rootCmd.MarkFlagRequired("db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	steps := []struct {
		file string
		cols int
		load func(context.Context, *pgxpool.Pool, []string) error
	}{
		{"category.csv", 3, loadCategory},
		{"genre.csv", 3, loadGenre},
		{"titles.csv", 4, loadTitle},
		{"genre_title.csv", 3, loadGenreTitle},
		{"users.csv", 7, loadUser},
		{"review.csv", 6, loadReview},
		{"comments.csv", 5, loadComment},
	}

	for _, st := range steps {
		n, err := importFile(ctx, pool, filepath.Join(dataDir, st.file), st.cols, st.load)
		if err != nil {
			return fmt.Errorf("%s: %w", st.file, err)
		}
		fmt.Printf("%s: %d rows imported\n", st.file, n)
	}

	// explicit IDs were inserted, move the sequences past them
	for _, seq := range []string{"categories", "genres", "titles", "reviews", "comments"} {
		if _, err := pool.Exec(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s','id'), COALESCE(MAX(id),1)) FROM %s`, seq, seq)); err != nil {
			return fmt.Errorf("advance %s sequence: %w", seq, err)
		}
	}
	return nil
}

func importFile(ctx context.Context, pool *pgxpool.Pool, path string, cols int, load func(context.Context, *pgxpool.Pool, []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = cols

	records, err := r.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("missing header row")
	}
	for i, row := range records[1:] {
		if err := load(ctx, pool, row); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return len(records) - 1, nil
}

func parseID(field, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: not a positive integer: %q", field, v)
	}
	return n, nil
}

func loadCategory(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	id, err := parseID("id", row[0])
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO categories(id, name, slug) VALUES($1,$2,$3) ON CONFLICT (id) DO NOTHING`,
		id, row[1], row[2])
	return err
}

func loadGenre(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	id, err := parseID("id", row[0])
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO genres(id, name, slug) VALUES($1,$2,$3) ON CONFLICT (id) DO NOTHING`,
		id, row[1], row[2])
	return err
}

func loadTitle(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	id, err := parseID("id", row[0])
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(row[2])
	if err != nil {
		return fmt.Errorf("year: not an integer: %q", row[2])
	}
	if year > time.Now().Year() {
		return fmt.Errorf("year: %d is in the future", year)
	}
	categoryID, err := parseID("category", row[3])
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO titles(id, name, year, category_id) VALUES($1,$2,$3,$4) ON CONFLICT (id) DO NOTHING`,
		id, row[1], year, categoryID)
	return err
}

func loadGenreTitle(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	titleID, err := parseID("title_id", row[1])
	if err != nil {
		return err
	}
	genreID, err := parseID("genre_id", row[2])
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO genre_title(title_id, genre_id) VALUES($1,$2) ON CONFLICT DO NOTHING`,
		titleID, genreID)
	return err
}

func loadUser(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	if _, err := parseID("id", row[0]); err != nil {
		return err
	}
	switch row[3] {
	case "user", "moderator", "admin":
	default:
		return fmt.Errorf("role: unknown value %q", row[3])
	}
	_, err := pool.Exec(ctx,
		`INSERT INTO users(id, username, email, role, bio, first_name, last_name)
		 VALUES($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (id) DO NOTHING`,
		row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	return err
}

func loadReview(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	id, err := parseID("id", row[0])
	if err != nil {
		return err
	}
	titleID, err := parseID("title_id", row[1])
	if err != nil {
		return err
	}
	if _, err := parseID("author", row[3]); err != nil {
		return err
	}
	score, err := strconv.Atoi(row[4])
	if err != nil || score < 1 || score > 10 {
		return fmt.Errorf("score: must be an integer in [1,10], got %q", row[4])
	}
	pubDate, err := time.Parse(time.RFC3339, row[5])
	if err != nil {
		return fmt.Errorf("pub_date: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO reviews(id, title_id, author_id, text, score, pub_date)
		 VALUES($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO NOTHING`,
		id, titleID, row[3], row[2], score, pubDate)
	return err
}

func loadComment(ctx context.Context, pool *pgxpool.Pool, row []string) error {
	id, err := parseID("id", row[0])
	if err != nil {
		return err
	}
	reviewID, err := parseID("review_id", row[1])
	if err != nil {
		return err
	}
	if _, err := parseID("author", row[3]); err != nil {
		return err
	}
	pubDate, err := time.Parse(time.RFC3339, row[4])
	if err != nil {
		return fmt.Errorf("pub_date: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO comments(id, review_id, author_id, text, pub_date)
		 VALUES($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
		id, reviewID, row[3], row[2], pubDate)
	return err
}
