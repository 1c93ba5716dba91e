// Package router wires the console HTTP surface.
package router

import (
	"github.com/kart-io/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kart-io/atlas/api/swagger/console" // swagger docs
	"github.com/kart-io/atlas/internal/console/handler"
	"github.com/kart-io/atlas/pkg/infra/middleware"
	"github.com/kart-io/atlas/pkg/infra/server"
	"github.com/kart-io/atlas/pkg/security/auth/jwt"
	"github.com/kart-io/atlas/pkg/security/session"
	"github.com/kart-io/atlas/pkg/validator"
)

// Handlers is the handler set Register mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Navigation *handler.NavigationHandler
	User       *handler.UserHandler
	Role       *handler.RoleHandler
	Menu       *handler.MenuHandler
	API        *handler.APIResourceHandler
}

// Register registers the console routes and runtime middleware.
//
// 认证分三档：登录、健康探针、文档完全开放；登出、权限码、导航、个人
// 信息只要求已认证（Authz 解析会话但不查接口权限）；其余管理接口按
// 会话持有的接口权限放行。
func Register(mgr *server.Manager, jwtAuth *jwt.JWT, sessions *session.Manager, h Handlers) error {
	logger.Info("Registering console routes...")

	// 使用全局验证器，确保统一的验证规则和 i18n
	mgr.HTTPServer().SetValidator(validator.Global())

	engine := mgr.Engine()

	openPaths := []string{"/api/v1/auth/login", "/health", "/live", "/ready"}
	openPrefixes := []string{"/swagger"}

	selfServicePaths := []string{
		"/api/v1/auth/logout",
		"/api/v1/auth/refresh",
		"/api/v1/auth/codes",
		"/api/v1/auth/verify",
	}
	selfServicePrefixes := []string{"/api/v1/nav", "/api/v1/profile"}

	// Tracing、Auth、Authz 依赖运行时对象，在路由注册前挂载。
	engine.Use(middleware.Tracing(
		middleware.WithTracingSkipPaths([]string{"/health", "/live", "/ready"}),
		middleware.WithTracingSkipPathPrefixes(openPrefixes),
	))

	authCfg := middleware.NewAuthConfig()
	authCfg.SkipPaths = openPaths
	authCfg.SkipPathPrefixes = openPrefixes
	engine.Use(middleware.Auth(authCfg, jwtAuth))

	engine.Use(middleware.Authz(middleware.AuthzConfig{
		SkipPaths:               openPaths,
		SkipPathPrefixes:        openPrefixes,
		ResolveOnlyPaths:        selfServicePaths,
		ResolveOnlyPathPrefixes: selfServicePrefixes,
	}, sessions))

	v1 := engine.Group("/api/v1")
	{
		// 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.GET("/codes", h.Auth.Codes)
			authGroup.POST("/verify", h.Auth.Verify)
		}

		// 导航
		nav := v1.Group("/nav")
		{
			nav.GET("/routes", h.Navigation.Routes)
			nav.GET("/menus", h.Navigation.Menus)
			nav.POST("/refresh", h.Navigation.Refresh)
			nav.GET("/stats", h.Navigation.CacheStats)
		}

		// 个人信息
		profile := v1.Group("/profile")
		{
			profile.GET("", h.User.Profile)
			profile.PUT("/password", h.User.ChangePassword)
		}

		// 用户管理
		users := v1.Group("/users")
		{
			users.POST("", h.User.Create)
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
			users.PUT("/:id/password", h.User.ResetPassword)

			users.GET("/:id/roles", h.User.Roles)
			users.POST("/:id/roles", h.User.AssignRole)
			users.DELETE("/:id/roles/:role_id", h.User.RevokeRole)
		}

		// 角色管理
		roles := v1.Group("/roles")
		{
			roles.POST("", h.Role.Create)
			roles.GET("", h.Role.List)
			roles.GET("/:id", h.Role.Get)
			roles.PUT("/:id", h.Role.Update)
			roles.DELETE("/:id", h.Role.Delete)

			roles.GET("/:id/menus", h.Role.Menus)
			roles.PUT("/:id/menus", h.Role.GrantMenus)
			roles.GET("/:id/apis", h.Role.APIs)
			roles.PUT("/:id/apis", h.Role.GrantAPIs)
		}

		// 菜单管理
		menus := v1.Group("/menus")
		{
			menus.POST("", h.Menu.Create)
			menus.GET("", h.Menu.List)
			menus.GET("/:id", h.Menu.Get)
			menus.PUT("/:id", h.Menu.Update)
			menus.DELETE("/:id", h.Menu.Delete)
		}

		// 接口资源
		apis := v1.Group("/apis")
		{
			apis.POST("", h.API.Create)
			apis.GET("", h.API.List)
			apis.GET("/:id", h.API.Get)
			apis.PUT("/:id", h.API.Update)
			apis.DELETE("/:id", h.API.Delete)
		}

		// 登录审计
		v1.GET("/loginlogs", h.Auth.LoginLogs)
	}

	// Swagger UI - 访问地址: http://localhost:8100/swagger/index.html
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("HTTP routes registered")
	return nil
}
