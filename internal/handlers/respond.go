package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/i18n"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/middleware"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

// now is replaced in tests.
var now = time.Now

// mutationResponse wraps a changed entity with a translated toast message.
type mutationResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeMutation(w http.ResponseWriter, r *http.Request, status int, code string, data any) {
	httpx.JSON(w, status, mutationResponse{Message: i18n.T(middleware.LangFrom(r), code), Data: data})
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	lang := middleware.LangFrom(r)
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpx.JSONErrorMessage(w, http.StatusUnprocessableEntity, "validation_failed",
			i18n.T(lang, "validation_failed"), i18n.TMap(lang, verr.Violations))
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONErrorMessage(w, http.StatusNotFound, "not_found", i18n.T(lang, "not_found"), nil)
	case errors.Is(err, store.ErrPersistence):
		httpx.JSONErrorMessage(w, http.StatusBadGateway, "persistence_error", i18n.T(lang, "persistence_error"), nil)
	case errors.Is(err, store.ErrStaleFetch):
		httpx.JSONErrorMessage(w, http.StatusConflict, "stale_fetch", i18n.T(lang, "load_error"), nil)
	default:
		logger.Error("unhandled request error", "method", r.Method, "path", r.URL.Path, "error", err)
		httpx.JSONErrorMessage(w, http.StatusInternalServerError, "internal_error", i18n.T(lang, "internal_error"), nil)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.Decode(r, dst); err != nil {
		logger.Debug("rejecting request body", "path", r.URL.Path, "error", err)
		httpx.JSONErrorMessage(w, http.StatusBadRequest, "invalid_json", i18n.T(middleware.LangFrom(r), "invalid_json"), nil)
		return false
	}
	return true
}

// parseSpec reads the list query string shared by every collection route.
func parseSpec(r *http.Request) query.Spec {
	q := r.URL.Query()
	spec := query.Spec{
		Text:    q.Get("q"),
		Status:  q.Get("status"),
		Payment: q.Get("payment"),
		Project: q.Get("project"),
		Sort:    query.SortKey(q.Get("sort")),
	}
	for _, raw := range append(q["tags"], q["tag"]...) {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				spec.Tags = append(spec.Tags, t)
			}
		}
	}
	if preset := q.Get("range"); preset != "" {
		spec.DateRange = query.Preset(preset, now())
	} else {
		spec.DateRange = query.ParseRange(q.Get("from"), q.Get("to"))
	}
	spec.PageIndex, _ = strconv.Atoi(q.Get("page"))
	spec.PageSize, _ = strconv.Atoi(q.Get("size"))
	if spec.PageSize <= 0 {
		spec.PageSize = query.DefaultPageSize
	}
	return spec
}

type listResponse[T any] struct {
	query.Result[T]
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// list runs a view with the requested page clamped to the available pages.
func list[T any](w http.ResponseWriter, spec query.Spec, run func(query.Spec) query.Result[T]) {
	res := run(spec)
	if clamped := query.ClampPage(spec.PageIndex, res.TotalPages); clamped != spec.PageIndex {
		spec.PageIndex = clamped
		res = run(spec)
	}
	httpx.JSON(w, http.StatusOK, listResponse[T]{Result: res, PageIndex: spec.PageIndex, PageSize: spec.PageSize})
}
