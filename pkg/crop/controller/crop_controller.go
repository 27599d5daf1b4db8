package controller

import "github.com/labstack/echo/v4"

type CropController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	UpdateImage(c echo.Context) error
	UpdatePlantingDate(c echo.Context) error
	Reorder(c echo.Context) error
	Calendar(c echo.Context) error
}
