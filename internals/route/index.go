package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hostelku_backend/internals/configs"
	admissionRoute "hostelku_backend/internals/features/hostel/admissions/route"
	attendanceRoute "hostelku_backend/internals/features/hostel/attendance/route"
	authRoute "hostelku_backend/internals/features/hostel/auth/route"
	dashboardRoute "hostelku_backend/internals/features/hostel/dashboard/route"
	feesRoute "hostelku_backend/internals/features/hostel/fees/route"
	occupancyRoute "hostelku_backend/internals/features/hostel/occupancy/route"
	penaltyRoute "hostelku_backend/internals/features/hostel/penalties/route"
	supportRoute "hostelku_backend/internals/features/hostel/support/route"
	"hostelku_backend/internals/helpers/mailer"
	"hostelku_backend/internals/helpers/oss"
	authMiddleware "hostelku_backend/internals/middlewares/auth"
)

var startTime time.Time

// openRoutes are reachable without an admin token: the password gate itself
// and support submissions coming from the student app.
var openRoutes = map[string]bool{
	"POST /api/verify-password":   true,
	"POST /api/technical-support": true,
}

func SetupRoutes(app *fiber.App, db *gorm.DB, blob oss.BlobService, m mailer.Mailer) {
	startTime = time.Now()

	BaseRoutes(app, db)

	if configs.JWTSecret != "" {
		jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		})
		app.Use("/api", func(c *fiber.Ctx) error {
			if openRoutes[c.Method()+" "+c.Path()] {
				return c.Next()
			}
			return jwt(c)
		})
	} else {
		log.Println("[WARN] JWT_SECRET unset, admin routes are NOT protected")
	}

	api := app.Group("/api")
	authRoute.AuthRoutes(api, db)
	supportRoute.SupportRoutes(api, db, blob)
	admissionRoute.AdmissionRoutes(api, db, blob)
	occupancyRoute.OccupancyRoutes(api, db)
	dashboardRoute.DashboardRoutes(api, db)
	feesRoute.FeesRoutes(api, db, m)
	penaltyRoute.PenaltyRoutes(api, db, blob)
	attendanceRoute.AttendanceRoutes(api, db)
}
