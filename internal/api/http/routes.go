package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ametelin/weather-ranking/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, st *store.MemoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/runs/latest", func(c *fiber.Ctx) error {
		run, err := st.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no pipeline runs yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load latest run")
		}
		return c.JSON(run)
	})

	v1.Get("/runs", func(c *fiber.Ctx) error {
		runs := st.History()
		return c.JSON(fiber.Map{
			"count": len(runs),
			"runs":  runs,
		})
	})

	v1.Get("/cities/:name", func(c *fiber.Ctx) error {
		req, err := parseCityParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		agg, err := st.LatestCity(req.Name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no data for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load city data")
		}
		return c.JSON(agg)
	})
}

// cityParam holds the path parameter identifying a city.
type cityParam struct {
	Name string `validate:"required,alpha"`
}

func parseCityParam(c *fiber.Ctx) (cityParam, error) {
	var p cityParam

	p.Name = strings.ToUpper(c.Params("name"))

	if err := validate.Struct(p); err != nil {
		return p, err
	}

	return p, nil
}
