// Package simulationapi exposes simulation sessions over HTTP.
package simulationapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/report"
	"github.com/beka-birhanu/vinom-agents/service"
	"github.com/beka-birhanu/vinom-agents/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultScoreboardSize = 10

var ErrNilManager = errors.New("simulation manager is required")

// Controller manages simulation session endpoints.
type Controller struct {
	manager i.SimulationManager
}

// NewController initializes a Controller.
func NewController(m i.SimulationManager) (*Controller, error) {
	if m == nil {
		return nil, ErrNilManager
	}
	return &Controller{manager: m}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	simulations := route.Group("/simulations")
	{
		simulations.POST("", c.create)
		simulations.GET("/:ID", c.snapshot)
		simulations.DELETE("/:ID", c.close)
		simulations.POST("/:ID/tick", c.tick)
		simulations.POST("/:ID/run", c.run)
		simulations.GET("/:ID/history", c.history)
		simulations.GET("/:ID/chart", c.chart)
	}

	route.GET("/scoreboard", c.scoreboard)
	route.GET("/runs/:ID", c.archivedRun)
}

// create starts a new session.
func (c *Controller) create(ctx *gin.Context) {
	var request CreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, state, err := c.manager.NewSimulation(ctx.Request.Context(), agent.Kind(request.AgentKind), request.scenarioConfig())
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &SimulationResponse{ID: id, State: state})
}

// snapshot returns the session state.
func (c *Controller) snapshot(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	state, err := c.manager.Snapshot(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &SimulationResponse{ID: id, State: state})
}

// tick advances the session by one time step.
func (c *Controller) tick(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	state, err := c.manager.Tick(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &SimulationResponse{ID: id, State: state})
}

// run advances the session by the requested number of ticks.
func (c *Controller) run(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := c.manager.Run(ctx.Request.Context(), id, request.Steps)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &SimulationResponse{ID: id, State: state})
}

// history returns the per-tick records of the session.
func (c *Controller) history(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	history, err := c.manager.History(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// chart renders the learning curve of the session as an HTML page.
func (c *Controller) chart(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	history, err := c.manager.History(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var page bytes.Buffer
	if err := report.Render(&page, fmt.Sprintf("simulation %s", id), history); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// close ends the session and returns its archived summary.
func (c *Controller) close(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	run, err := c.manager.Close(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, run)
}

// scoreboard lists the fastest runs of an agent kind.
func (c *Controller) scoreboard(ctx *gin.Context) {
	var query ScoreboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if query.N == 0 {
		query.N = defaultScoreboardSize
	}

	scores, err := c.manager.Scoreboard(ctx.Request.Context(), agent.Kind(query.Kind), query.N)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// archivedRun returns the stored summary of a run.
func (c *Controller) archivedRun(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	run, err := c.manager.ArchivedRun(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, run)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownAgentKind),
		errors.Is(err, service.ErrInvalidScenario),
		errors.Is(err, service.ErrInvalidScenarioSize),
		errors.Is(err, service.ErrInvalidSteps):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrTickBudgetExhausted), errors.Is(err, report.ErrEmptyHistory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
