package main

import (
	"go-activity-planner/core/logger"
	"go-activity-planner/core/server"
)

// @title Activity Planner API
// @version 1.0
// @description API Backend cho ứng dụng lên kế hoạch hoạt động nhóm - gợi ý thời gian thông minh
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@activityplanner.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
