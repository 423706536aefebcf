package routes

import (
	"campushub_go/controllers"
	"campushub_go/middleware"
	"campushub_go/services/realtime"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, hub *realtime.Hub) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	departmentController := &controllers.DepartmentController{}
	subjectController := &controllers.SubjectController{}
	subjectImportController := &controllers.SubjectImportController{}
	facultyController := &controllers.FacultyController{}
	roomController := &controllers.RoomController{}
	timeSlotController := &controllers.TimeSlotController{Hub: hub}
	scheduleController := controllers.NewScheduleController(hub)
	realtimeController := controllers.NewRealtimeController(hub)
	healthController := &controllers.HealthController{}

	// API group
	api := app.Group("/api")

	// Health check (no authentication)
	api.Get("/health", healthController.GetHealthStatus)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)

	// User management (admin only)
	users := protected.Group("/users", middleware.RequireAdmin())
	users.Post("/", authController.Register)

	// Department management routes
	departments := protected.Group("/departments")
	departments.Get("/", departmentController.GetDepartments)
	departments.Get("/by-code/:code", departmentController.GetDepartmentByCode)
	departments.Get("/:id", departmentController.GetDepartment)
	departments.Post("/", middleware.RequireAdmin(), departmentController.CreateDepartment)
	departments.Put("/:id", middleware.RequireAdmin(), departmentController.UpdateDepartment)
	departments.Delete("/:id", middleware.RequireAdmin(), departmentController.DeleteDepartment)

	// Subject management routes
	subjects := protected.Group("/subjects")
	subjects.Get("/", subjectController.GetSubjects)
	subjects.Get("/:id", subjectController.GetSubject)
	subjects.Post("/", middleware.RequireAdmin(), subjectController.CreateSubject)
	subjects.Post("/import", middleware.RequireAdmin(), subjectImportController.Import)
	subjects.Put("/:id", middleware.RequireAdmin(), subjectController.UpdateSubject)
	subjects.Delete("/:id", middleware.RequireAdmin(), subjectController.DeleteSubject)

	// Faculty management routes
	faculties := protected.Group("/faculties")
	faculties.Get("/", facultyController.GetFaculties)
	faculties.Get("/by-faculty-id/:faculty_id", facultyController.GetFacultyByFacultyID)
	faculties.Get("/:id", facultyController.GetFaculty)
	faculties.Post("/", middleware.RequireAdmin(), facultyController.CreateFaculty)
	faculties.Put("/:id", middleware.RequireAdmin(), facultyController.UpdateFaculty)
	faculties.Delete("/:id", middleware.RequireAdmin(), facultyController.DeleteFaculty)

	// Room management routes
	rooms := protected.Group("/rooms")
	rooms.Get("/", roomController.GetRooms)
	rooms.Get("/:id", roomController.GetRoom)
	rooms.Post("/", middleware.RequireAdmin(), roomController.CreateRoom)
	rooms.Put("/:id", middleware.RequireAdmin(), roomController.UpdateRoom)
	rooms.Delete("/:id", middleware.RequireAdmin(), roomController.DeleteRoom)

	// Time slot configuration routes
	timeSlots := protected.Group("/time-slots")
	timeSlots.Get("/", timeSlotController.GetTimeSlots)
	timeSlots.Post("/", middleware.RequireAdmin(), timeSlotController.CreateTimeSlot)
	timeSlots.Put("/:id", middleware.RequireAdmin(), timeSlotController.UpdateTimeSlot)
	timeSlots.Delete("/:id", middleware.RequireAdmin(), timeSlotController.DeleteTimeSlot)

	// Schedule management routes
	schedules := protected.Group("/schedules")
	schedules.Get("/", scheduleController.GetSchedules)
	schedules.Get("/grid", scheduleController.GetGrid)
	schedules.Get("/export", scheduleController.ExportTimetable)
	schedules.Post("/check-conflicts", scheduleController.CheckConflicts)
	schedules.Post("/publish", middleware.RequireAdmin(), scheduleController.PublishSchedules)
	schedules.Delete("/bulk-delete", middleware.RequireAdmin(), scheduleController.BulkDeleteSchedules)
	schedules.Get("/:id", scheduleController.GetSchedule)
	schedules.Post("/", middleware.RequireAdmin(), scheduleController.CreateSchedule)
	schedules.Post("/:id/copy", middleware.RequireAdmin(), scheduleController.CopySchedule)
	schedules.Put("/:id", middleware.RequireAdmin(), scheduleController.UpdateSchedule)
	schedules.Delete("/:id", middleware.RequireAdmin(), scheduleController.DeleteSchedule)

	// WebSocket stats (admin only)
	ws := protected.Group("/ws")
	ws.Get("/stats", middleware.RequireAdmin(), realtimeController.GetStats)

	// WebSocket connection endpoint
	app.Use("/ws", realtimeController.UpgradeMiddleware())
	app.Get("/ws", realtimeController.WebSocketHandler())
}
