package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL 超过该时长没有请求的限流记录会被清理
const idleLimiterTTL = 10 * time.Minute

// RateLimiter 按 IP 限制建立连接的速率，超限后封禁一段时间
type RateLimiter struct {
	clients map[string]*ipRate
	mu      sync.Mutex

	perSecond   rate.Limit
	burst       int
	perMinute   rate.Limit
	minuteBurst int
	banDuration time.Duration
	now         func() time.Time
}

// ipRate 单个 IP 的令牌桶
type ipRate struct {
	second      *rate.Limiter
	minute      *rate.Limiter
	lastSeen    time.Time
	bannedUntil time.Time
}

// NewRateLimiter 创建速率限制器
func NewRateLimiter(maxPerSecond, maxPerMinute int, banDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		clients:     make(map[string]*ipRate),
		perSecond:   rate.Limit(maxPerSecond),
		burst:       maxPerSecond,
		perMinute:   rate.Every(time.Minute / time.Duration(max(maxPerMinute, 1))),
		minuteBurst: maxPerMinute,
		banDuration: banDuration,
		now:         time.Now,
	}
}

// Allow 检查是否允许请求
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	r, exists := rl.clients[ip]
	if !exists {
		r = &ipRate{
			second: rate.NewLimiter(rl.perSecond, rl.burst),
			minute: rate.NewLimiter(rl.perMinute, rl.minuteBurst),
		}
		rl.clients[ip] = r
	}
	r.lastSeen = now

	if now.Before(r.bannedUntil) {
		return false
	}

	if !r.second.AllowN(now, 1) || !r.minute.AllowN(now, 1) {
		r.bannedUntil = now.Add(rl.banDuration)
		log.Printf("⚠️ IP %s 因请求过于频繁被暂时封禁 %v", ip, rl.banDuration)
		return false
	}
	return true
}

// IsBanned 检查 IP 是否被封禁
func (rl *RateLimiter) IsBanned(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	r, exists := rl.clients[ip]
	if !exists {
		return false
	}
	return rl.now().Before(r.bannedUntil)
}

// Sweep 清理长时间没有请求且未被封禁的记录，可注册为房间清理任务
func (rl *RateLimiter) Sweep(_ context.Context, now time.Time) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, r := range rl.clients {
		if now.Sub(r.lastSeen) > idleLimiterTTL && now.After(r.bannedUntil) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed, nil
}

// --- 来源验证 ---

// OriginChecker 来源验证器
type OriginChecker struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewOriginChecker 创建来源验证器
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{
		allowedOrigins: make(map[string]bool),
	}

	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			oc.allowAll = true
			return oc
		}
		if origin != "" {
			oc.allowedOrigins[strings.ToLower(origin)] = true
		}
	}

	return oc
}

// Check 检查来源是否允许。没有 Origin 头的请求（终端客户端）总是放行
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return oc.allowedOrigins[strings.ToLower(origin)]
}

// --- IP 白名单/黑名单 ---

// IPFilter IP 过滤器
type IPFilter struct {
	whitelist map[string]bool
	blacklist map[string]bool
	mu        sync.RWMutex
}

// NewIPFilter 创建 IP 过滤器
func NewIPFilter() *IPFilter {
	return &IPFilter{
		whitelist: make(map[string]bool),
		blacklist: make(map[string]bool),
	}
}

// AddToWhitelist 添加到白名单
func (f *IPFilter) AddToWhitelist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whitelist[ip] = true
}

// AddToBlacklist 添加到黑名单
func (f *IPFilter) AddToBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklist[ip] = true
}

// RemoveFromBlacklist 从黑名单移除
func (f *IPFilter) RemoveFromBlacklist(ip string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blacklist, ip)
}

// IsAllowed 检查 IP 是否允许：黑名单优先，其次白名单（非空时）
func (f *IPFilter) IsAllowed(ip string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.blacklist[ip] {
		return false
	}
	if len(f.whitelist) > 0 && !f.whitelist[ip] {
		return false
	}
	return true
}

// GetClientIP 获取客户端真实 IP
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// 第一个是最原始的客户端
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// --- 消息速率限制 ---

// MessageRateLimiter 已建立连接的消息速率限制
type MessageRateLimiter struct {
	limits map[string]*messageRate
	mu     sync.Mutex

	perSecond        rate.Limit
	burst            int
	warningThreshold float64 // 剩余令牌低于该值时提醒
	now              func() time.Time
}

type messageRate struct {
	limiter  *rate.Limiter
	warnings int
}

// NewMessageRateLimiter 创建消息速率限制器
func NewMessageRateLimiter(maxPerSecond int) *MessageRateLimiter {
	return &MessageRateLimiter{
		limits:           make(map[string]*messageRate),
		perSecond:        rate.Limit(maxPerSecond),
		burst:            maxPerSecond,
		warningThreshold: float64(maxPerSecond / 2),
		now:              time.Now,
	}
}

// AllowMessage 检查是否允许处理消息，接近上限时 warning 为 true
func (ml *MessageRateLimiter) AllowMessage(clientID string) (allowed bool, warning bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := ml.now()
	r, exists := ml.limits[clientID]
	if !exists {
		r = &messageRate{limiter: rate.NewLimiter(ml.perSecond, ml.burst)}
		ml.limits[clientID] = r
	}

	if !r.limiter.AllowN(now, 1) {
		r.warnings++
		return false, true
	}
	return true, r.limiter.TokensAt(now) < ml.warningThreshold
}

// GetWarningCount 获取超限次数
func (ml *MessageRateLimiter) GetWarningCount(clientID string) int {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	r, exists := ml.limits[clientID]
	if !exists {
		return 0
	}
	return r.warnings
}

// ClearRateLimit 移除客户端记录
func (ml *MessageRateLimiter) ClearRateLimit(clientID string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	delete(ml.limits, clientID)
}
