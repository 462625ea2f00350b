package healthcontrol

import (
	"github.com/NZ-WEB/go-monitoring/internal/health"
	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Handler drives a health store over HTTP.
type Handler struct {
	store *health.Store
}

// NewHandler creates a Handler for store.
func NewHandler(store *health.Store) *Handler {
	return &Handler{store: store}
}

// Control handles GET /api/health-control.
//
//	?error=true&key=db&reason=down&code=DB_DOWN  sets an error
//	?error=false&key=db                          clears one key
//	?error=false                                 clears every error
//	(no query)                                   returns the state
//
// Query values alias the request buffer, so anything handed to the store is
// copied first.
func (h *Handler) Control(c *fiber.Ctx) error {
	key := utils.CopyString(c.Query("key", DefaultKey))

	switch c.Query("error") {
	case "true":
		reason := utils.CopyString(c.Query("reason", "manually set error"))
		h.store.SetError(key, reason, utils.CopyString(c.Query("code")))
		logger.Infof("Health error set via control endpoint: %s", key)
		return c.JSON(ActionResponse{Success: true, Action: "setHealthError", Key: key, Reason: reason})

	case "false":
		if c.Query("key") == "" {
			h.store.ClearAll()
			return c.JSON(ActionResponse{Success: true, Action: "clearAllHealthErrors"})
		}
		h.store.ClearError(key)
		return c.JSON(ActionResponse{Success: true, Action: "clearHealthError", Key: key})
	}

	return c.JSON(StateResponse{
		State: h.store.Snapshot(),
		Usage: map[string]string{
			"setError":   "/api/health-control?error=true&key=db&reason=Some+error",
			"clearError": "/api/health-control?error=false&key=db",
			"clearAll":   "/api/health-control?error=false",
		},
	})
}

// Action handles POST /api/test-health with an ActionRequest body.
func (h *Handler) Action(c *fiber.Ctx) error {
	var req ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Action {
	case ActionSetError:
		if req.Key == "" || req.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "key and message are required for setError action")
		}
		h.store.SetError(req.Key, req.Message, req.Code)
		return c.JSON(ActionResponse{Success: true, Action: "error set", Key: req.Key})

	case ActionClearError:
		if req.Key == "" {
			return fiber.NewError(fiber.StatusBadRequest, "key is required for clearError action")
		}
		h.store.ClearError(req.Key)
		return c.JSON(ActionResponse{Success: true, Action: "error cleared", Key: req.Key})

	case ActionGetState:
		return c.JSON(h.store.Snapshot())

	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid action, use: setError, clearError or getState")
	}
}
