package controller

import "github.com/labstack/echo/v4"

type AdvisorController interface {
	Advice(c echo.Context) error
	Autofill(c echo.Context) error
	Diagnose(c echo.Context) error
	Chat(c echo.Context) error
	News(c echo.Context) error
}
