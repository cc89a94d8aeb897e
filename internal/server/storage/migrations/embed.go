package migrations

import "embed"

// FS 排行榜 SQLite 迁移脚本
//
//go:embed *.sql
var FS embed.FS
