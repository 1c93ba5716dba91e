package console

import "github.com/kart-io/atlas/pkg/navigation"

// defaultViewManifest enumerates the console frontend's built-in pages.
// Menu records reference these by component path; an unregistered
// reference degrades to the not-found view at compile time.
func defaultViewManifest() map[string]navigation.View {
	return map[string]navigation.View{
		"dashboard":        "views/dashboard/index",
		"system/user":      "views/system/user/index",
		"system/role":      "views/system/role/index",
		"system/menu":      "views/system/menu/index",
		"system/api":       "views/system/api/index",
		"monitor/loginlog": "views/monitor/loginlog/index",
		"profile":          "views/profile/index",
		"about":            "views/about/index",
	}
}
