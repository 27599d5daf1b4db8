package controller

import "github.com/labstack/echo/v4"

type VideoController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Delete(c echo.Context) error
	UpdateThumbnail(c echo.Context) error
	Preview(c echo.Context) error
}
