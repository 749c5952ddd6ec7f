package model

// Role 用户角色
type Role string

// 角色常量
const (
	RoleAdmin  Role = "admin"
	RoleMod    Role = "mod"
	RoleMember Role = "member"
)

// PermissionSet 权限集合，调用方不直接比较角色字面量
type PermissionSet map[Role]struct{}

// 命名权限集合
var (
	// CanModerate 审核权限：管理员和版主
	CanModerate = PermissionSet{
		RoleAdmin: {},
		RoleMod:   {},
	}

	// CanAdministrate 管理权限：仅管理员
	CanAdministrate = PermissionSet{
		RoleAdmin: {},
	}
)

// ParseRole 解析角色字符串，未知角色按member处理
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleMod:
		return RoleMod
	default:
		return RoleMember
	}
}

// IsValidRole 判断角色是否合法
func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleMod, RoleMember:
		return true
	}
	return false
}

// CheckPermission 判断角色是否在权限集合内
func CheckPermission(role Role, set PermissionSet) bool {
	_, ok := set[role]
	return ok
}

// Actor 请求主体，由认证中间件解析JWT后构造
type Actor struct {
	UserID int64  `json:"user_id"`
	Role   Role   `json:"role"`
	Email  string `json:"email"`
}

// IsAuthenticated 判断主体是否已认证
func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0
}

// Can 判断主体是否持有权限集合
func (a Actor) Can(set PermissionSet) bool {
	return CheckPermission(a.Role, set)
}
