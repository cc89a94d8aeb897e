package anticheat

import (
	"context"
	"log"
	"time"

	"github.com/MJDaws0n/Tetris/internal/server/session"
)

// Validator 结合会话存储执行校验
type Validator struct {
	store session.Store
	now   func() time.Time
}

// NewValidator 创建校验器
func NewValidator(store session.Store) *Validator {
	return &Validator{store: store, now: time.Now}
}

// StartSession 为新的单人对局创建会话
func (v *Validator) StartSession(ctx context.Context) (string, error) {
	return v.store.Create(ctx)
}

// Check 查询会话并校验提交，拒绝时记录审计日志
func (v *Validator) Check(ctx context.Context, sub Submission) (Decision, error) {
	var start *time.Time
	if sub.SessionID != "" {
		t, ok, err := v.store.StartTime(ctx, sub.SessionID)
		if err != nil {
			return Decision{}, err
		}
		if ok {
			start = &t
		}
	}

	d := Validate(sub, start, v.now())
	if d.Verdict.Rejected() {
		log.Printf("🚨 成绩被拒绝 [%s] session=%q name=%q score=%d lines=%d elapsed=%.3fs: %s",
			d.Verdict, sub.SessionID, sub.Name, sub.Score, sub.Lines, d.Elapsed.Seconds(), d.Reason)
	}
	return d, nil
}
