package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig JWT配置
type JWTConfig struct {
	Secret     string
	ExpireTime time.Duration
}

// DefaultJWTConfig 默认JWT配置
var DefaultJWTConfig = &JWTConfig{
	Secret:     "campus-hub-dev", // 建议从配置文件或环境变量读取
	ExpireTime: 24 * time.Hour,
}

// Claims 身份声明，由外部身份服务签发
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken 生成 JWT token，测试和本地调试使用
func GenerateToken(userID int64, role, email string) (string, error) {
	return GenerateTokenWithConfig(userID, role, email, DefaultJWTConfig)
}

// GenerateTokenWithConfig 使用指定配置生成 JWT token
func GenerateTokenWithConfig(userID int64, role, email string, config *JWTConfig) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.ExpireTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Secret))
}

// ParseToken 解析并校验 JWT token
func ParseToken(tokenString string) (*Claims, error) {
	return ParseTokenWithConfig(tokenString, DefaultJWTConfig)
}

// ParseTokenWithConfig 使用指定配置解析 JWT token
func ParseTokenWithConfig(tokenString string, config *JWTConfig) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 校验签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}

	return claims, nil
}
