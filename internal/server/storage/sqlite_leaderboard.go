package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MJDaws0n/Tetris/internal/server/storage/migrations"
)

// SQLiteLeaderboard 基于 SQLite 的排行榜，适合单机部署
type SQLiteLeaderboard struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite 打开（必要时创建）数据库文件并执行迁移
func OpenSQLite(ctx context.Context, path string) (*SQLiteLeaderboard, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite 路径不能为空")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开 sqlite 失败: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接 sqlite 失败: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("执行迁移失败: %w", err)
	}

	return &SQLiteLeaderboard{db: db, now: time.Now}, nil
}

// Upsert 写入成绩，同名（不区分大小写）只保留最高分，显示名与首次记录时间不变
func (l *SQLiteLeaderboard) Upsert(ctx context.Context, name string, score int, mode Mode) error {
	if err := checkUpsert(name, mode); err != nil {
		return err
	}

	_, err := l.db.ExecContext(ctx, `
INSERT INTO scores (mode, name, name_key, score, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (mode, name_key) DO UPDATE SET score = MAX(score, excluded.score)`,
		string(mode), name, nameKey(name), score, l.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("写入排行榜失败: %w", err)
	}
	return nil
}

// Query 读取整个分区，按分数降序、首次记录时间升序排列
func (l *SQLiteLeaderboard) Query(ctx context.Context, mode Mode) ([]Entry, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT name, score FROM scores WHERE mode = ? ORDER BY score DESC, created_at ASC, id ASC`,
		string(mode),
	)
	if err != nil {
		return nil, fmt.Errorf("读取排行榜失败: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("解析排行榜失败: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("读取排行榜失败: %w", err)
	}
	return entries, nil
}

// Ping 检查数据库连通性
func (l *SQLiteLeaderboard) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// Close 关闭数据库
func (l *SQLiteLeaderboard) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}
