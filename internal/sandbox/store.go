package sandbox

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nao1215/censudex/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// Store はサンドボックスの全サービスが共有するSQLiteデータベース。
type Store struct {
	db *sql.DB
	// now は現在時刻を返す。テストで差し替える。
	now func() time.Time
}

// Open はSQLiteデータベースを開き、マイグレーションを適用する。
// path に ":memory:" を指定するとインメモリデータベースになる。
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteの書き込みは直列なので接続は1本に絞る。インメモリDBは接続ごとに別物になる点にも対応する
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if _, err := migration.Run(ctx, db, migrationsFS, "migrations", logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close はデータベース接続を閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// timestamp は現在時刻をRFC 3339形式で返す。
func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// inTx はトランザクション内で fn を実行する。fn がエラーを返した場合はロールバックする。
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
