// @title           Freelink API
// @version         1.0
// @description     Job board connecting companies with freelancers. Companies spend tokens to publish vacancies.
// @contact.name    Freelink support
// @contact.email   support@freelink.co
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "freelink_backend/internal/app"

func main() {
	app.Run()
}
