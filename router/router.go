package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	advisorCtrl "agniro/pkg/advisor/controller"
	articleCtrl "agniro/pkg/article/controller"
	authCtrl "agniro/pkg/auth/controller"
	cropCtrl "agniro/pkg/crop/controller"
	"agniro/pkg/middleware"
	videoCtrl "agniro/pkg/video/controller"
)

type Controllers struct {
	Crops    cropCtrl.CropController
	Articles articleCtrl.ArticleController
	Videos   videoCtrl.VideoController
	Advisor  advisorCtrl.AdvisorController
	Auth     authCtrl.AuthController
	Climate  interface {
		Regions(echo.Context) error
		Rainfall(echo.Context) error
		ParseMonths(echo.Context) error
	}
	Health interface{ Health(echo.Context) error }
}

type Options struct {
	SecureCookies bool
	// BodyLimit caps request bodies; photo data URIs make them large.
	BodyLimit string
	// Hold pins the client's session while a request runs.
	Hold echo.MiddlewareFunc
}

func New(e *echo.Echo, log *zap.Logger, ctl Controllers, opt Options) *echo.Echo {
	if opt.BodyLimit == "" {
		opt.BodyLimit = "12M"
	}
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.BodyLimit(opt.BodyLimit))
	e.Use(middleware.RequestLogger(log))

	e.GET("/health", ctl.Health.Health)
	e.GET("/regions", ctl.Climate.Regions)
	e.GET("/rainfall", ctl.Climate.Rainfall)
	e.GET("/months/parse", ctl.Climate.ParseMonths)

	api := e.Group("", middleware.Client(opt.SecureCookies))
	if opt.Hold != nil {
		api.Use(opt.Hold)
	}
	api.GET("/whoami", ctl.Auth.WhoAmI)

	crops := api.Group("/crops")
	crops.GET("", ctl.Crops.List)
	crops.POST("", ctl.Crops.Create)
	crops.GET("/calendar.xlsx", ctl.Crops.Calendar)
	crops.POST("/reorder", ctl.Crops.Reorder)
	crops.GET("/:id", ctl.Crops.Get)
	crops.PUT("/:id", ctl.Crops.Update)
	crops.DELETE("/:id", ctl.Crops.Delete)
	crops.PATCH("/:id/image", ctl.Crops.UpdateImage)
	crops.PATCH("/:id/planting-date", ctl.Crops.UpdatePlantingDate)

	articles := api.Group("/articles")
	articles.GET("", ctl.Articles.List)
	articles.POST("/generate", ctl.Articles.Generate)
	articles.GET("/:id", ctl.Articles.Get)
	articles.GET("/:id/html", ctl.Articles.HTML)
	articles.POST("/:id/archive", ctl.Articles.Archive)
	articles.DELETE("/:id", ctl.Articles.Delete)
	articles.PATCH("/:id/image", ctl.Articles.UpdateImage)

	videos := api.Group("/videos")
	videos.GET("", ctl.Videos.List)
	videos.POST("", ctl.Videos.Create)
	videos.GET("/preview", ctl.Videos.Preview)
	videos.DELETE("/:id", ctl.Videos.Delete)
	videos.PATCH("/:id/thumbnail", ctl.Videos.UpdateThumbnail)

	ai := api.Group("/ai")
	ai.POST("/advice", ctl.Advisor.Advice)
	ai.POST("/autofill", ctl.Advisor.Autofill)
	ai.POST("/diagnose", ctl.Advisor.Diagnose)
	ai.POST("/chat", ctl.Advisor.Chat)
	ai.POST("/news", ctl.Advisor.News)
	return e
}
