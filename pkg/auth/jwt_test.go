package auth

import (
	"testing"
	"time"
)

// TestTokenRoundTrip 测试令牌签发与解析
func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "mod", "mod@campus.edu")
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, 期望 42", claims.UserID)
	}
	if claims.Role != "mod" {
		t.Errorf("Role = %q, 期望 mod", claims.Role)
	}
	if claims.Email != "mod@campus.edu" {
		t.Errorf("Email = %q", claims.Email)
	}
}

// TestParseTokenWrongSecret 测试错误密钥被拒绝
func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "admin", "admin@campus.edu")
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	wrongConfig := &JWTConfig{Secret: "another-secret", ExpireTime: time.Hour}
	if _, err := ParseTokenWithConfig(token, wrongConfig); err == nil {
		t.Error("错误密钥应解析失败")
	}
}

// TestParseTokenExpired 测试过期令牌被拒绝
func TestParseTokenExpired(t *testing.T) {
	expiredConfig := &JWTConfig{Secret: DefaultJWTConfig.Secret, ExpireTime: -time.Hour}
	token, err := GenerateTokenWithConfig(7, "member", "s@campus.edu", expiredConfig)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	if _, err := ParseToken(token); err == nil {
		t.Error("过期令牌应解析失败")
	}
}

// TestParseTokenMissingUserID 测试缺失用户ID的令牌被拒绝
func TestParseTokenMissingUserID(t *testing.T) {
	token, err := GenerateToken(0, "member", "x@campus.edu")
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	if _, err := ParseToken(token); err == nil {
		t.Error("user_id为0的令牌应解析失败")
	}
}

// TestParseTokenGarbage 测试非法令牌串被拒绝
func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("非法令牌串应解析失败")
	}
}
