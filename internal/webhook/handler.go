// Package webhook serves the action endpoint the dialogue runtime calls:
// it decodes the action call, dispatches it to the registered action and
// encodes the resulting events and responses.
package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vasptech/vaspx-actions/internal/action"
	"github.com/vasptech/vaspx-actions/internal/ctxutil"
	domerrors "github.com/vasptech/vaspx-actions/internal/errors"
	"github.com/vasptech/vaspx-actions/internal/logger"
	"github.com/vasptech/vaspx-actions/internal/metrics"
	"github.com/vasptech/vaspx-actions/internal/ratelimit"
	"github.com/vasptech/vaspx-actions/internal/sdk"
	"github.com/vasptech/vaspx-actions/internal/sentry"
)

const moduleName = "webhook"

// Error types recorded in vaspx_http_errors_total.
const (
	errTypeBadRequest    = "bad_request"
	errTypeUnknownAction = "unknown_action"
	errTypeUnauthorized  = "unauthorized"
	errTypeRateLimit     = "rate_limit"
	errTypeTooLarge      = "too_large"
	errTypeInternal      = "internal"
)

// unknownActionLabel replaces caller-supplied names in metrics so label
// cardinality stays bounded.
const unknownActionLabel = "unknown"

// RequestIDHeader carries the per-call request ID back to the caller.
const RequestIDHeader = "X-Request-ID"

// Handler handles action calls.
type Handler struct {
	registry *action.Registry
	metrics  *metrics.Metrics
	logger   *logger.Logger
	runErr   *domerrors.ErrorWrapper

	token   string                 // shared secret; empty disables the check
	limiter *ratelimit.KeyedLimiter // per-sender limiter; nil disables limiting
}

// NewHandler creates a handler dispatching to registry.
func NewHandler(registry *action.Registry, m *metrics.Metrics, log *logger.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: registry,
		metrics:  m,
		logger:   log.WithModule(moduleName),
		runErr:   domerrors.NewWrapper(moduleName, "run_action"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is the Gin handler for POST /webhook.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	requestID, ok := ctxutil.GetRequestID(ctx)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
		ctx = ctxutil.WithRequestID(ctx, requestID)
	}
	c.Header(RequestIDHeader, requestID)

	if !h.authorized(c.Query("token")) {
		h.logger.WarnContext(ctx, "Rejected action call with invalid token")
		h.reject(c, http.StatusUnauthorized, errTypeUnauthorized, sdk.ErrorBody{Error: "Invalid or missing token."})
		return
	}

	var call sdk.ActionCall
	if err := json.NewDecoder(c.Request.Body).Decode(&call); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.WithField("limit", tooLarge.Limit).WarnContext(ctx, "Action call body too large")
			h.reject(c, http.StatusRequestEntityTooLarge, errTypeTooLarge,
				sdk.ErrorBody{Error: fmt.Sprintf("Request body exceeds %d bytes.", tooLarge.Limit)})
			return
		}
		h.logger.WithError(err).WarnContext(ctx, "Malformed action call")
		h.reject(c, http.StatusBadRequest, errTypeBadRequest, sdk.ErrorBody{Error: "Invalid action call: " + err.Error()})
		return
	}
	if call.NextAction == "" {
		h.reject(c, http.StatusBadRequest, errTypeBadRequest, sdk.ErrorBody{Error: "Invalid action call: next_action is required."})
		return
	}

	name := call.NextAction
	sender := call.Sender()
	ctx = ctxutil.WithAction(ctxutil.WithSenderID(ctx, sender), name)

	act, ok := h.registry.Get(name)
	if !ok {
		h.logger.WarnContext(ctx, "Unknown action requested")
		h.metrics.RecordAction(unknownActionLabel, metrics.StatusUnknown, 0)
		h.reject(c, http.StatusNotFound, errTypeUnknownAction,
			sdk.ErrorBody{Error: sdk.UnknownActionMessage(name), ActionName: name})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(sender) {
		h.logger.WarnContext(ctx, "Sender rate limit exceeded")
		h.metrics.RecordAction(name, metrics.StatusRateLimited, 0)
		h.reject(c, http.StatusTooManyRequests, errTypeRateLimit,
			sdk.ErrorBody{Error: domerrors.ErrRateLimitExceeded.Error(), ActionName: name})
		return
	}

	req := action.NewRequest(call.Text())
	req.Sender = sender

	out, err := act.Run(ctx, req)
	if err != nil {
		err = h.runErr.Wrap(err, "The assistant could not answer right now.")
		h.logger.WithError(err).ErrorContext(ctx, "Action failed")
		sentry.CaptureExceptionWithContext(ctx, err, map[string]string{"action": name, "sender_id": sender})
		h.metrics.RecordAction(name, metrics.StatusError, 0)
		h.reject(c, http.StatusInternalServerError, errTypeInternal,
			sdk.ErrorBody{Error: domerrors.GetUserMessage(err), ActionName: name})
		return
	}

	result := h.encode(out)
	duration := time.Since(start)
	h.metrics.RecordAction(name, metrics.StatusSuccess, duration.Seconds())

	h.logger.WithFields(map[string]any{
		"responses":   len(result.Responses),
		"events":      len(result.Events),
		"mentions":    out.Mentions.Len(),
		"duration_ms": duration.Milliseconds(),
	}).InfoContext(ctx, "Action completed")

	c.JSON(http.StatusOK, result)
}

// ListActions is the Gin handler for GET /actions.
func (h *Handler) ListActions(c *gin.Context) {
	names := h.registry.Names()
	infos := make([]sdk.ActionInfo, len(names))
	for i, name := range names {
		infos[i] = sdk.ActionInfo{Name: name}
	}
	c.JSON(http.StatusOK, infos)
}

func (h *Handler) authorized(got string) bool {
	if h.token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}

func (h *Handler) reject(c *gin.Context, status int, errType string, body sdk.ErrorBody) {
	h.metrics.RecordHTTPError(errType)
	c.AbortWithStatusJSON(status, body)
}

// encode converts an outcome into the wire result and records what was sent.
func (h *Handler) encode(out action.Outcome) *sdk.ActionResult {
	for _, s := range out.Slots {
		h.metrics.RecordSlotEvent(s.Name)
	}
	for _, r := range out.Replies {
		h.metrics.RecordTemplate(r.Template.String())
	}

	if out.Scanned {
		ids := out.Mentions.IDs()
		mentioned := make([]string, len(ids))
		for i, id := range ids {
			mentioned[i] = id.String()
		}
		h.metrics.RecordMentions(mentioned)
	}

	return out.Result()
}
