package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/bdtax/internal/breakeven"
	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/rgehrsitz/bdtax/internal/compare"
	"github.com/rgehrsitz/bdtax/internal/config"
	"github.com/rgehrsitz/bdtax/internal/domain"
	"github.com/valyala/fasthttp"
)

// Server exposes the calculation engine over HTTP
type Server struct {
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	parser  *config.InputParser
	logger  calculation.Logger
	version string
}

// NewServer creates a server around engine. A nil logger discards output.
func NewServer(engine *calculation.CalculationEngine, logger calculation.Logger, version string) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		solver:  breakeven.NewDefaultSolver(engine),
		parser:  config.NewInputParser(),
		logger:  logger,
		version: version,
	}
}

// Handler routes requests to the endpoint handlers
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		switch string(ctx.Path()) {
		case "/healthz":
			s.onlyMethod(ctx, fasthttp.MethodGet, s.HandleHealth)
		case "/api/v1/calculate":
			s.onlyMethod(ctx, fasthttp.MethodPost, s.HandleCalculate)
		case "/api/v1/compare":
			s.onlyMethod(ctx, fasthttp.MethodPost, s.HandleCompare)
		case "/api/v1/breakeven":
			s.onlyMethod(ctx, fasthttp.MethodPost, s.HandleBreakeven)
		case "/api/v1/slabs":
			s.onlyMethod(ctx, fasthttp.MethodGet, s.HandleSlabs)
		default:
			writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no route for %s", ctx.Path()))
		}
		s.logger.Debugf("%s %s -> %d (%s)", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start))
	}
}

// ListenAndServe serves until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("bdtax API listening on %s", addr)
	server := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "bdtax",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return server.ListenAndServe(addr)
}

func (s *Server) onlyMethod(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

// HandleHealth reports liveness and the supported fiscal years
func (s *Server) HandleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     s.version,
		FiscalYears: s.engine.FiscalYears(),
	})
}

// HandleCalculate computes one fiscal year when ?fy= is given, otherwise
// both years side by side. The body is a TaxInput; an empty body is the
// default state.
func (s *Server) HandleCalculate(ctx *fasthttp.RequestCtx) {
	input, err := s.parseInput(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	if raw := ctx.QueryArgs().Peek("fy"); len(raw) > 0 {
		fy, err := domain.ParseFiscalYear(string(raw))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		result, err := s.engine.Calculate(input, fy)
		if err != nil {
			s.writeEngineError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, result)
		return
	}

	cmp, err := s.engine.CalculateAll(input)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, cmp)
}

// HandleCompare returns a full comparison set including what-if alternatives
func (s *Server) HandleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	input, err := s.parseInput(req.Input)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	set, err := s.compare.Compare(ctx, input, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		// template and transform errors come from the request
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, set)
}

// HandleBreakeven runs the break-even solver for one target, or for every
// target and fiscal year when the request sets all
func (s *Server) HandleBreakeven(ctx *fasthttp.RequestCtx) {
	var req BreakevenRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	input, err := s.parseInput(req.Input)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	constraints := breakeven.DefaultConstraints()
	if req.FiscalYear != "" {
		if constraints.FiscalYear, err = domain.ParseFiscalYear(req.FiscalYear); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
	}
	if req.InvestmentLine != "" {
		constraints.InvestmentLine = req.InvestmentLine
	}
	constraints.MinAmount = req.MinAmount
	constraints.MaxAmount = req.MaxAmount
	constraints.TargetPayable = req.TargetPayable

	if req.All {
		multi, err := s.solver.OptimizeAllTargets(ctx, input, constraints)
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, multi)
		return
	}

	target := breakeven.OptimizationTarget(req.Target)
	if target == "" {
		target = breakeven.TargetInvestment
	}
	goal := breakeven.OptimizationGoal(req.Goal)
	if goal == "" {
		goal = breakeven.GoalMaximizeRebate
		if target == breakeven.TargetSalary {
			goal = breakeven.GoalTaxFree
		}
	}
	result, err := s.solver.Optimize(ctx, breakeven.OptimizationRequest{
		BaseInput:   input,
		Target:      target,
		Goal:        goal,
		Constraints: constraints,
	})
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// HandleSlabs returns the brackets for ?fy= (default FY2025-26). The
// threshold is ?threshold= when given, otherwise the one resolved from
// ?category= and ?age=.
func (s *Server) HandleSlabs(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	fy := domain.FY2025_26
	if raw := args.Peek("fy"); len(raw) > 0 {
		parsed, err := domain.ParseFiscalYear(string(raw))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		fy = parsed
	}
	rules, err := s.engine.RulesFor(fy)
	if err != nil {
		s.writeEngineError(ctx, err)
		return
	}

	profile := domain.DefaultProfile()
	if raw := args.Peek("category"); len(raw) > 0 {
		cat, ok := domain.LookupCategory(string(raw))
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown category %q", raw))
			return
		}
		profile.Category = cat
	}
	if args.Has("age") {
		age, err := args.GetUint("age")
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "age must be a whole number")
			return
		}
		profile.Age = &age
	}

	resp := SlabsResponse{
		FiscalYear: fy,
		Category:   calculation.EffectiveCategory(profile, rules),
		Threshold:  calculation.ResolveThreshold(profile, rules),
	}
	if raw := args.Peek("threshold"); len(raw) > 0 {
		resp.Threshold = calculation.ParseAmount(string(raw))
	}
	resp.Slabs = calculation.GenerateSlabs(resp.Threshold, rules.Schedule)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) parseInput(body []byte) (*domain.TaxInput, error) {
	if len(body) == 0 || string(body) == "null" {
		return domain.DefaultTaxInput(), nil
	}
	return s.parser.Parse(body, "json")
}

func (s *Server) writeEngineError(ctx *fasthttp.RequestCtx, err error) {
	if errors.Is(err, calculation.ErrUnknownFiscalYear) {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.logger.Errorf("calculation failed: %v", err)
	writeError(ctx, fasthttp.StatusInternalServerError, "calculation failed")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
