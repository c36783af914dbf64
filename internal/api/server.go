// Package api exposes simulations over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cpusim/internal/config"
	"cpusim/internal/sched"
	"cpusim/internal/sim"
	"cpusim/internal/workload"
)

// Request limits. Every request runs a whole simulation inside the handler,
// so engine and workload sizes are capped.
const (
	MaxProcessors         = 64
	MaxProcesses          = 1000
	MaxBurst              = 10_000
	MaxArrival            = 1_000_000
	MaxContextSwitchTicks = 1000
)

// Server serves the simulation API.
type Server struct {
	app    *fiber.App
	cfg    config.Config
	logger *slog.Logger
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Policy   string             `json:"policy"` // fcfs, sjf, rr or all
	Mode     string             `json:"mode"`
	Seed     uint64             `json:"seed"`
	Engine   *sched.Config      `json:"engine"`
	Workload []sched.Descriptor `json:"workload"` // generated from seed when empty
}

// SimulateResponse carries one result per policy run.
type SimulateResponse struct {
	Results []sim.Result `json:"results"`
}

// PolicyInfo describes one available policy.
type PolicyInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// New builds the API around cfg, which supplies defaults for every request.
func New(cfg config.Config, logger *slog.Logger) *Server {
	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		cfg:    cfg,
		logger: logger,
	}

	s.app.Use(recover.New())

	api := s.app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Get("/policies", s.listPolicies)
		v1.Post("/simulate", s.simulate)
		v1.Get("/:policy", s.runPolicy)
	}
	return s
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("api listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the listener.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) listPolicies(c *fiber.Ctx) error {
	var out []PolicyInfo
	for _, name := range sched.PolicyNames() {
		p, err := sched.PolicyByName(name, s.cfg.Engine)
		if err != nil {
			return err
		}
		out = append(out, PolicyInfo{Name: name, Title: p.Name()})
	}
	return c.JSON(fiber.Map{"policies": out})
}

// runPolicy handles GET /api/v1/:policy?seed=&mode=&size=
func (s *Server) runPolicy(c *fiber.Ctx) error {
	wcfg := s.cfg.Workload
	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(c, "seed must be an unsigned integer")
		}
		wcfg.Seed = seed
	}
	if v := c.Query("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "size must be an integer")
		}
		wcfg.Size = size
	}
	if wcfg.Size > MaxProcesses {
		return badRequest(c, fmt.Sprintf("size must be at most %d", MaxProcesses))
	}
	tmpl, err := workload.Generate(wcfg)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return s.respond(c, c.Params("policy"), c.Query("mode", s.cfg.Mode), s.cfg.Engine, tmpl)
}

func (s *Server) simulate(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request format")
	}

	engine := s.cfg.Engine
	if req.Engine != nil {
		engine = *req.Engine
	}
	var (
		tmpl workload.Template
		err  error
	)
	if len(req.Workload) > 0 {
		tmpl, err = workload.NewTemplate(req.Workload)
	} else {
		wcfg := s.cfg.Workload
		wcfg.Seed = req.Seed
		tmpl, err = workload.Generate(wcfg)
	}
	if err != nil {
		return badRequest(c, err.Error())
	}
	mode := req.Mode
	if mode == "" {
		mode = s.cfg.Mode
	}
	return s.respond(c, req.Policy, mode, engine, tmpl)
}

func (s *Server) respond(c *fiber.Ctx, policyName, modeName string, engine sched.Config, tmpl workload.Template) error {
	mode, err := sim.ParseMode(modeName)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := engine.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := checkLimits(engine, tmpl); err != nil {
		return badRequest(c, err.Error())
	}

	var policies []sched.Policy
	if name := strings.ToLower(policyName); name == "" || name == "all" {
		policies = sched.Policies(engine)
	} else {
		p, err := sched.PolicyByName(name, engine)
		if err != nil {
			if errors.Is(err, sched.ErrUnknownPolicy) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return badRequest(c, err.Error())
		}
		policies = []sched.Policy{p}
	}

	results, err := sim.Compare(c.UserContext(), engine, policies, tmpl, sim.Options{
		Mode:   mode,
		Logger: s.logger,
	})
	if err != nil {
		s.logger.Error("simulation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
	}
	return c.JSON(SimulateResponse{Results: results})
}

// checkLimits rejects requests whose simulation would be too large to run
// inside a handler.
func checkLimits(engine sched.Config, tmpl workload.Template) error {
	switch {
	case engine.Processors > MaxProcessors:
		return fmt.Errorf("processors must be at most %d", MaxProcessors)
	case engine.ContextSwitchTicks > MaxContextSwitchTicks:
		return fmt.Errorf("context_switch_ticks must be at most %d", MaxContextSwitchTicks)
	case tmpl.Len() > MaxProcesses:
		return fmt.Errorf("workload must have at most %d processes", MaxProcesses)
	}
	for _, d := range tmpl.Descriptors() {
		if d.Burst > MaxBurst {
			return fmt.Errorf("process %d: burst must be at most %d", d.ID, MaxBurst)
		}
		if d.Arrival > MaxArrival {
			return fmt.Errorf("process %d: arrival must be at most %d", d.ID, MaxArrival)
		}
	}
	return nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
