// Package main is the entry point for the Atlas console server.
//
//	@title						Atlas Console API
//	@version					1.0
//	@description				Atlas 运营控制台授权与导航服务
//
//	@contact.name				Atlas Team
//	@contact.url				https://github.com/kart-io/atlas
//
//	@license.name				Apache 2.0
//	@license.url				http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host						localhost:8100
//	@BasePath					/api/v1
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Example: "Bearer {token}"
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/atlas/cmd/console/app"
)

func main() {
	app.NewApp().Run()
}
