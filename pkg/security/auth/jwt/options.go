package jwt

import (
	jwtopt "github.com/kart-io/atlas/pkg/options/jwt"
)

// Options 复用共享的 JWT 配置选项（pkg/options/jwt），避免配置层和
// 认证器各持有一份字段定义。
type Options = jwtopt.Options

// NewOptions returns JWT options populated with defaults.
func NewOptions() *Options {
	return jwtopt.NewOptions()
}
