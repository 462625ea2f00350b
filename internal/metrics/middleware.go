package metrics

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// reservedPrefix marks framework-internal paths that are never measured.
const reservedPrefix = "/__"

var staticExtensions = map[string]struct{}{
	".ico": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {},
	".css": {}, ".js": {}, ".map": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".txt": {}, ".xml": {}, ".json": {},
}

// MiddlewareConfig lists paths that must not be measured, typically the
// metrics, health and ready routes themselves.
type MiddlewareConfig struct {
	ExcludedPaths []string

	// Now overrides the clock used to time requests.
	Now func() time.Time
}

// Middleware times requests on a Fiber application and feeds a Collector.
type Middleware struct {
	collector *Collector
	excluded  map[string]struct{}
	now       func() time.Time
}

// NewMiddleware creates the request-timing middleware.
func NewMiddleware(collector *Collector, cfg MiddlewareConfig) *Middleware {
	m := &Middleware{
		collector: collector,
		excluded:  make(map[string]struct{}, len(cfg.ExcludedPaths)),
		now:       cfg.Now,
	}
	for _, p := range cfg.ExcludedPaths {
		if p != "" {
			m.excluded[p] = struct{}{}
		}
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Excluded reports whether requests to p are left unmeasured.
func (m *Middleware) Excluded(p string) bool {
	if strings.HasPrefix(p, reservedPrefix) {
		return true
	}
	if _, ok := m.excluded[p]; ok {
		return true
	}
	_, static := staticExtensions[strings.ToLower(path.Ext(p))]
	return static
}

// Handler returns the fiber.Handler to install with app.Use.
func (m *Middleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		if m.Excluded(c.Path()) {
			return c.Next()
		}

		t := m.track(utils.CopyString(c.Method()), normalizeRoute(c.Path()))
		defer func() {
			if rec := recover(); rec != nil {
				t.finish(fiber.StatusInternalServerError)
				panic(rec)
			}
			t.finish(statusOf(c, err))
		}()

		return c.Next()
	}
}

// requestTracker finalizes a single request exactly once.
type requestTracker struct {
	collector *Collector
	method    string
	route     string
	start     time.Time
	now       func() time.Time
	done      atomic.Bool
}

func (m *Middleware) track(method, route string) *requestTracker {
	t := &requestTracker{
		collector: m.collector,
		method:    method,
		route:     route,
		start:     m.now(),
		now:       m.now,
	}
	m.collector.IncActive()
	return t
}

// finish records the request and releases the active gauge. Calls after the
// first are ignored.
func (t *requestTracker) finish(status int) {
	if !t.done.CompareAndSwap(false, true) {
		return
	}
	defer t.collector.DecActive()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("metrics collection failed",
				zap.String("method", t.method),
				zap.String("route", t.route),
				zap.Error(fmt.Errorf("%v", rec)))
		}
	}()

	t.collector.ObserveRequest(t.method, t.route, status, t.now().Sub(t.start).Seconds())
}

// statusOf resolves the status the client will receive. Errors returned by
// the chain are rendered later by the app error handler, so the code is
// derived from the error itself.
func statusOf(c *fiber.Ctx, err error) int {
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
	return c.Response().StatusCode()
}

var (
	uuidSegmentRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	hexSegmentRE  = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
)

// normalizeRoute collapses numeric, UUID and long hex segments of p into
// ":param" so the route label stays low-cardinality. Readable segments such
// as slugs are kept verbatim. The result never aliases p.
func normalizeRoute(p string) string {
	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			out = append(out, ":param")
		} else {
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if _, err := strconv.Atoi(seg); err == nil {
		return true
	}
	return uuidSegmentRE.MatchString(seg) || hexSegmentRE.MatchString(seg)
}
