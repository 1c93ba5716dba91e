package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Console service errors (Service: 01).
var (
	// ErrSessionReset indicates the session was reset while a fetch for it
	// was still in flight; the result has been discarded.
	ErrSessionReset = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryAuth, 0),
		HTTP:      http.StatusUnauthorized,
		GRPCCode:  codes.Unauthenticated,
		MessageEN: "Session has been reset",
		MessageZH: "会话已重置",
	})

	// ErrSessionNotFound indicates no live session exists for the token.
	ErrSessionNotFound = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryAuth, 1),
		HTTP:      http.StatusUnauthorized,
		GRPCCode:  codes.Unauthenticated,
		MessageEN: "Session not found",
		MessageZH: "会话不存在",
	})

	// ErrUserDisabled indicates the account is disabled.
	ErrUserDisabled = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryAuth, 2),
		HTTP:      http.StatusForbidden,
		GRPCCode:  codes.PermissionDenied,
		MessageEN: "User is disabled",
		MessageZH: "用户已被禁用",
	})

	// ErrMenuHasChildren indicates a menu cannot be deleted while children exist.
	ErrMenuHasChildren = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryConflict, 0),
		HTTP:      http.StatusConflict,
		GRPCCode:  codes.FailedPrecondition,
		MessageEN: "Menu still has children",
		MessageZH: "菜单下存在子菜单",
	})

	// ErrRoleInUse indicates a role cannot be deleted while users hold it.
	ErrRoleInUse = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryConflict, 1),
		HTTP:      http.StatusConflict,
		GRPCCode:  codes.FailedPrecondition,
		MessageEN: "Role is still assigned to users",
		MessageZH: "角色仍被用户使用",
	})

	// ErrPermissionFetch indicates the permission source could not be read.
	ErrPermissionFetch = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Failed to load permissions",
		MessageZH: "权限加载失败",
	})

	// ErrMenuFetch indicates the menu source could not be read.
	ErrMenuFetch = Register(&Errno{
		Code:      MakeCode(ServiceConsole, CategoryInternal, 1),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Failed to load menus",
		MessageZH: "菜单加载失败",
	})
)
