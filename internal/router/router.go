package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"armentum/internal/auth"
	"armentum/internal/config"
	"armentum/internal/handler"
	"armentum/internal/model"
)

// Handlers bundles every handler the router wires.
type Handlers struct {
	Auth            *handler.AuthHandler
	Member          *handler.MemberHandler
	Public          *handler.PublicHandler
	AdminMember     *handler.AdminMemberHandler
	AdminRehearsal  *handler.AdminRehearsalHandler
	AdminAttendance *handler.AdminAttendanceHandler
	AdminFinance    *handler.AdminFinanceHandler
	AdminEvent      *handler.AdminEventHandler
	AdminContent    *handler.AdminContentHandler
}

// Register wires routes and middleware. Three zones: public, member (valid
// token plus active account) and admin (member zone plus the admin role).
func Register(e *echo.Echo, cfg *config.Config, gate *auth.Gate, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Debug = cfg.Environment == "development"

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", h.Public.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/auth/verify/:token", h.Auth.VerifyEmail)
	api.GET("/events", h.Public.ListEvents)
	api.GET("/events/:id", h.Public.GetEvent)
	api.GET("/news", h.Public.ListNews)
	api.GET("/pages/:slug", h.Public.GetPage)

	// Member zone: any authenticated active account
	member := api.Group("", gate.Authenticate(), gate.ResolveUser())
	member.POST("/auth/logout", h.Auth.Logout)
	member.GET("/auth/me", h.Auth.Me)
	member.GET("/members/me", h.Member.MyProfile)
	member.PUT("/members/me", h.Member.UpdateMyProfile)
	member.GET("/finance/me", h.Member.MyDues)
	member.GET("/finance/me/history", h.Member.MyPaymentHistory)
	member.GET("/finance/me/summary", h.Member.MyFinanceSummary)
	member.GET("/attendance/me", h.Member.MyAttendance)
	member.GET("/attendance/me/stats", h.Member.MyAttendanceStats)
	member.GET("/files/:id/url", h.AdminContent.FileDownloadURL)

	// Admin zone
	admin := api.Group("/admin", gate.Authenticate(), gate.ResolveUser(), gate.RequireRoles(model.RoleAdmin))

	admin.GET("/members", h.AdminMember.List)
	admin.POST("/members", h.AdminMember.Create)
	admin.GET("/members/:id", h.AdminMember.Get)
	admin.PUT("/members/:id", h.AdminMember.Update)
	admin.DELETE("/members/:id", h.AdminMember.Deactivate)

	admin.GET("/rehearsals", h.AdminRehearsal.List)
	admin.POST("/rehearsals", h.AdminRehearsal.Create)
	admin.GET("/rehearsals/:id", h.AdminRehearsal.Get)
	admin.PUT("/rehearsals/:id", h.AdminRehearsal.Update)
	admin.DELETE("/rehearsals/:id", h.AdminRehearsal.Delete)
	admin.GET("/rehearsals/:id/roster", h.AdminRehearsal.Roster)
	admin.PUT("/rehearsals/:id/attendance/:miembro_id", h.AdminAttendance.RegisterForRehearsal)

	admin.POST("/attendance", h.AdminAttendance.Register)
	admin.GET("/attendance", h.AdminAttendance.List)
	admin.GET("/attendance/reports", h.AdminAttendance.Report)

	admin.POST("/finance/dues", h.AdminFinance.CreateDue)
	admin.GET("/finance/dues", h.AdminFinance.ListDues)
	admin.POST("/finance/dues/:id/pay", h.AdminFinance.PayDue)
	admin.PUT("/finance/payments", h.AdminFinance.RecordPayment)
	admin.GET("/finance/payments", h.AdminFinance.ListPayments)
	admin.GET("/finance/summary", h.AdminFinance.Summary)
	admin.GET("/finance/reports", h.AdminFinance.Report)

	admin.GET("/events", h.AdminEvent.List)
	admin.POST("/events", h.AdminEvent.Create)
	admin.PUT("/events/:id", h.AdminEvent.Update)
	admin.DELETE("/events/:id", h.AdminEvent.Delete)

	admin.POST("/news", h.AdminContent.CreateAnnouncement)
	admin.POST("/files", h.AdminContent.UploadFile)
	admin.GET("/files", h.AdminContent.ListFiles)
	admin.DELETE("/files/:id", h.AdminContent.DeleteFile)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
