// Package anticheat 对单人模式的成绩提交做启发式校验
package anticheat

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

const (
	// MinElapsed 开局后允许提交的最短时间
	MinElapsed = 100 * time.Millisecond
	// BurstLines 消行速率上限的固定余量
	BurstLines = 20
	// LinesPerSecond 持续消行速率上限
	LinesPerSecond = 10
	// MaxPointsPerLine 单次最多四消 100×4² 分，折合每行 400
	MaxPointsPerLine = 400
)

// Verdict 校验结论
type Verdict int

const (
	VerdictAccept Verdict = iota
	// VerdictNoOp 零分提交，接受但不写入
	VerdictNoOp
	VerdictSecurityViolation
	VerdictTooFast
	VerdictImpossibleLineRate
	VerdictScoreMismatch
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccept:
		return "accept"
	case VerdictNoOp:
		return "noop"
	case VerdictSecurityViolation:
		return "security_violation"
	case VerdictTooFast:
		return "too_fast"
	case VerdictImpossibleLineRate:
		return "impossible_line_rate"
	case VerdictScoreMismatch:
		return "score_mismatch"
	default:
		return "unknown"
	}
}

// Rejected 是否为拒绝结论
func (v Verdict) Rejected() bool {
	return v >= VerdictSecurityViolation
}

// ErrorCode 返回拒绝结论对应的协议错误码
func (v Verdict) ErrorCode() int {
	switch v {
	case VerdictSecurityViolation:
		return protocol.ErrCodeSecurityViolation
	case VerdictTooFast:
		return protocol.ErrCodeTooFast
	case VerdictImpossibleLineRate:
		return protocol.ErrCodeImpossibleLineRate
	case VerdictScoreMismatch:
		return protocol.ErrCodeScoreMismatch
	default:
		return 0
	}
}

// Submission 一次成绩提交
type Submission struct {
	SessionID string
	Name      string
	Score     int
	Lines     int
	HardMode  bool
}

// Decision 校验结果
type Decision struct {
	Verdict Verdict
	// Name 去除所有空白后的名字，仅 VerdictAccept 时有效
	Name    string
	Elapsed time.Duration
	Reason  string
}

// Validate 校验成绩提交。sessionStart 为 nil 表示会话缺失或已失效。
// 零分提交在耗时检查之前返回 NoOp。
func Validate(sub Submission, sessionStart *time.Time, now time.Time) Decision {
	if sub.SessionID == "" || sessionStart == nil {
		return Decision{Verdict: VerdictSecurityViolation, Reason: "missing or unknown session"}
	}

	elapsed := now.Sub(*sessionStart)
	if sub.Score == 0 {
		return Decision{Verdict: VerdictNoOp, Elapsed: elapsed}
	}

	if elapsed < MinElapsed {
		return Decision{
			Verdict: VerdictTooFast,
			Elapsed: elapsed,
			Reason:  fmt.Sprintf("submitted %.3fs after start", elapsed.Seconds()),
		}
	}

	maxLines := BurstLines + elapsed.Seconds()*LinesPerSecond
	if float64(sub.Lines) > maxLines {
		return Decision{
			Verdict: VerdictImpossibleLineRate,
			Elapsed: elapsed,
			Reason:  fmt.Sprintf("%d lines exceeds %.1f", sub.Lines, maxLines),
		}
	}

	if sub.Lines == 0 && sub.Score > 0 {
		return Decision{
			Verdict: VerdictScoreMismatch,
			Elapsed: elapsed,
			Reason:  fmt.Sprintf("score %d with no lines", sub.Score),
		}
	}

	if sub.Score > sub.Lines*MaxPointsPerLine {
		return Decision{
			Verdict: VerdictScoreMismatch,
			Elapsed: elapsed,
			Reason:  fmt.Sprintf("score %d exceeds %d for %d lines", sub.Score, sub.Lines*MaxPointsPerLine, sub.Lines),
		}
	}

	return Decision{Verdict: VerdictAccept, Name: StripSpaces(sub.Name), Elapsed: elapsed}
}

// StripSpaces 去除字符串中的所有空白字符
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
