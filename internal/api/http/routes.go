package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/planora/eventcast/internal/event"
	"github.com/planora/eventcast/internal/weather"
)

var validate = validator.New()

// createEventRequest is the POST /events body.
type createEventRequest struct {
	Name string `json:"name" validate:"required"`
	City string `json:"city" validate:"required"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Type string `json:"type"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, events *event.Service, weatherClient *weather.Client) {
	app.Post("/events", func(c *fiber.Ctx) error {
		var req createEventRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		created, err := events.Create(c.UserContext(), req.Name, req.City, req.Date, req.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create event")
		}
		return c.JSON(created)
	})

	app.Get("/events", func(c *fiber.Ctx) error {
		all, err := events.List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list events")
		}
		return c.JSON(all)
	})

	app.Put("/events/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var patch event.Patch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if patch.Date != nil {
			if err := validate.Var(*patch.Date, "datetime=2006-01-02"); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			}
		}

		updated, err := events.Update(id, patch)
		if err != nil {
			if errors.Is(err, event.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "event not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update event")
		}
		return c.JSON(updated)
	})

	// Passthrough of the raw provider payload. The date only scopes the
	// cache entry; the provider always reports current conditions.
	app.Get("/weather/:city/:date", func(c *fiber.Ctx) error {
		raw, err := weatherClient.Raw(c.UserContext(), c.Params("city"), c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(raw)
	})

	app.Post("/events/:id/weather-check", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		updated, err := events.RefreshWeather(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, event.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "event not found")
			case errors.Is(err, weather.ErrUnavailable):
				return fiber.NewError(fiber.StatusInternalServerError, "weather provider unavailable")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to refresh weather")
			}
		}
		return c.JSON(updated)
	})

	app.Get("/events/:id/suitability", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		view, err := events.Suitability(id)
		if err != nil {
			if errors.Is(err, event.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "event not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read suitability")
		}
		return c.JSON(view)
	})

	app.Get("/events/:id/alternatives", func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		alts, err := events.Alternatives(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, event.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "event not found")
			case errors.Is(err, event.ErrNoAlternatives):
				return fiber.NewError(fiber.StatusNotFound, "no suitable alternative dates found")
			case errors.Is(err, event.ErrInvalidDate):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to rank alternative dates")
			}
		}
		return c.JSON(alts)
	})
}

func parseID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid event id")
	}
	return id, nil
}
