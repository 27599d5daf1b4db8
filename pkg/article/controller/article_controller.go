package controller

import "github.com/labstack/echo/v4"

type ArticleController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Generate(c echo.Context) error
	Archive(c echo.Context) error
	Delete(c echo.Context) error
	UpdateImage(c echo.Context) error
	HTML(c echo.Context) error
}
