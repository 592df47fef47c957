// @title           Portfolia API
// @version         1.0
// @description     API платформы цифровых портфолио (документация Swagger).
// @contact.name    Portfolia
// @contact.email   support@portfolia.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "portfolia_backend/internal/app"

func main() {
	app.Run()
}
