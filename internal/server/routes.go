package server

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

var validate = validator.New()

// createRequest is the POST /history payload.
type createRequest struct {
	Location    string  `json:"location" validate:"required"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description" validate:"required"`
	StartDate   string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Note        string  `json:"note" validate:"max=60"`
}

// updateRequest is the PUT /history/:id payload. Absent fields are left
// untouched.
type updateRequest struct {
	Note      *string `json:"note" validate:"omitempty,max=60"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (s *Server) registerRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Weather history service"})
	})

	s.app.Get("/weather", s.getWeather)
	s.app.Get("/weather/coordinates", s.getWeatherByCoordinates)

	s.app.Get("/history", s.listHistory)
	s.app.Post("/history", s.createHistory)
	s.app.Put("/history/:id", s.updateHistory)
	s.app.Delete("/history/:id", s.deleteHistory)
}

func (s *Server) getWeather(c *fiber.Ctx) error {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location parameter is required")
	}
	unit := c.Query("unit", "celsius")

	snap, err := s.provider.CurrentWeather(c.Context(), location, unit, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

func (s *Server) getWeatherByCoordinates(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat")
	lon := c.QueryFloat("lon")
	unit := c.Query("unit", "celsius")

	snap, err := s.provider.CoordinatesWeather(c.Context(), lat, lon, unit)
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

func (s *Server) listHistory(c *fiber.Ctx) error {
	recs, err := s.db.ListRecords(c.Context())
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []records.Record{}
	}
	return c.JSON(recs)
}

func (s *Server) createHistory(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	created, err := s.db.CreateRecord(c.Context(), records.NewRecord{
		Location:    req.Location,
		Temperature: req.Temperature,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Note:        req.Note,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) updateHistory(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	updated, err := s.db.UpdateRecord(c.Context(), c.Params("id"), records.Update{
		Note:      req.Note,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) deleteHistory(c *fiber.Ctx) error {
	if err := s.db.DeleteRecord(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}
