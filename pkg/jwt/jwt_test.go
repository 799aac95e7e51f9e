package jwt

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 2*time.Hour, 7*24*time.Hour)
}

// TestGenerateAndParseToken Token往返:生成后解析出相同的Claims
func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "reader@example.com", false)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不完整")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("过期时间错误: got=%d", pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID错误: expected=42, got=%d", claims.UserID)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("Email错误: got=%s", claims.Email)
	}
	if claims.IsStaff {
		t.Error("普通读者的is_staff应为false")
	}
}

// TestStaffClaim 馆员标识在Token中往返保持
func TestStaffClaim(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(1, "staff@example.com", true)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if !claims.IsStaff {
		t.Error("馆员的is_staff应为true")
	}
}

// TestParseInvalidToken 非法Token被拒绝
func TestParseInvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("not-a-token"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	// 用另一个密钥签名的Token
	other := NewManager("other-secret", time.Hour, time.Hour)
	pair, err := other.GenerateToken(1, "a@example.com", false)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if _, err := m.ParseToken(pair.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

// TestParseExpiredToken 过期Token返回专门的错误码
func TestParseExpiredToken(t *testing.T) {
	// 有效期为负,生成即过期
	m := NewManager("test-secret", -time.Hour, time.Hour)

	pair, err := m.GenerateToken(1, "a@example.com", false)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.ParseToken(pair.AccessToken); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

// TestRefreshAccessToken 刷新后的Access Token保留身份信息
func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(7, "reader@example.com", true)
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	newToken, err := m.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("刷新Token失败: %v", err)
	}

	claims, err := m.ParseToken(newToken)
	if err != nil {
		t.Fatalf("解析新Token失败: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID错误: expected=7, got=%d", claims.UserID)
	}
}
