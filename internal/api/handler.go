// Package api exposes the Round Robin simulator over HTTP.
package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/TigerCipher/rrsched/internal/config"
	"github.com/TigerCipher/rrsched/internal/dispatcher"
	"github.com/TigerCipher/rrsched/internal/process"
	"github.com/TigerCipher/rrsched/internal/report"
)

// ProcessRequest describes one process; a missing id defaults to its list position.
type ProcessRequest struct {
	ID       *int `json:"id"`
	Arrival  int  `json:"arrival"`
	Burst    int  `json:"burst"`
	Priority int  `json:"priority"`
}

// ScheduleRequest is the body of a schedule call. A zero quantum uses the configured one.
type ScheduleRequest struct {
	Quantum       int              `json:"quantum"`
	MinimizeChart *bool            `json:"minimize_chart"`
	Processes     []ProcessRequest `json:"processes"`
}

// SchedulerHandler serves schedule requests.
type SchedulerHandler struct {
	config *config.Config
}

// NewSchedulerHandler creates a handler using cfg for request defaults.
func NewSchedulerHandler(cfg *config.Config) *SchedulerHandler {
	return &SchedulerHandler{config: cfg}
}

// NewApp builds the fiber application with all routes registered.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	h := NewSchedulerHandler(cfg)

	app.Get("/health", h.Health)
	v1 := app.Group("/api").Group("/v1")
	{
		v1.Post("/rr", h.RoundRobin)
	}
	return app
}

// Health reports that the service is up.
func (h *SchedulerHandler) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// RoundRobin schedules the posted workload and replies with the JSON report.
func (h *SchedulerHandler) RoundRobin(ctx *fiber.Ctx) error {
	request := &ScheduleRequest{}
	if err := ctx.BodyParser(request); err != nil {
		return badRequest(ctx, "invalid request format")
	}

	d, err := h.dispatcher(request)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := d.Run(ctx.UserContext()); err != nil {
		if errors.Is(err, dispatcher.ErrNoProcesses) || errors.Is(err, dispatcher.ErrTooManySlices) ||
			errors.Is(err, dispatcher.ErrTickOverflow) {
			return badRequest(ctx, err.Error())
		}
		log.Printf("round robin run failed: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
	}
	res, err := d.Result()
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return report.WriteJSON(ctx, report.NewRunID(), res)
}

func (h *SchedulerHandler) dispatcher(request *ScheduleRequest) (*dispatcher.RoundRobin, error) {
	minimize := h.config.MinimizeChart
	if request.MinimizeChart != nil {
		minimize = *request.MinimizeChart
	}
	d := dispatcher.New(
		dispatcher.WithQuantum(h.config.Quantum),
		dispatcher.WithMinimizedChart(minimize),
		dispatcher.WithMaxSlices(h.config.MaxSlices),
	)
	if request.Quantum != 0 {
		if err := d.SetQuantum(request.Quantum); err != nil {
			return nil, err
		}
	}
	for i, p := range request.Processes {
		id := i
		if p.ID != nil {
			id = *p.ID
		}
		if id < 0 || p.Arrival < 0 || p.Burst < 0 {
			return nil, fmt.Errorf("%w: process %d has a negative value", process.ErrParse, i)
		}
		if err := d.AddProcess(process.New(id, p.Arrival, p.Burst, p.Priority)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
