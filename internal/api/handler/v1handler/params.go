package v1handler

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"registrar/pkg/controller"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// listQuery reads the paging, sorting and search parameters shared by the
// table endpoints. Unknown sort columns fall back to the first allowed one.
func listQuery(r *http.Request, sorts ...string) storage.ListQuery {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	sortBy := q.Get("sort_by")
	if !slices.Contains(sorts, sortBy) && len(sorts) > 0 {
		sortBy = sorts[0]
	}

	return storage.ListQuery{
		Page:   page,
		Search: strings.TrimSpace(q.Get("search_term")),
		SortBy: sortBy,
		Desc:   strings.EqualFold(q.Get("order"), "desc"),
	}
}

// statuses splits the comma separated status filter.
func statuses(r *http.Request) []string {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

func parseUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid %s", name)
	}

	return id, nil
}

// pathUUID parses a path parameter. Malformed IDs cannot name anything, so
// they are reported as not found.
func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, serrors.With(serrors.ErrNotFound, "%s not found", param)
	}

	return id, nil
}

// portfolioParam reads the optional portfolio query parameter.
func portfolioParam(r *http.Request) (domain.PortfolioID, error) {
	raw := r.URL.Query().Get("portfolio")
	if raw == "" {
		return domain.PortfolioID{}, nil
	}
	id, err := parseUUID(raw, "portfolio")

	return domain.PortfolioID(id), err
}

// respond runs fn and writes its result as JSON with status, or 204 when fn
// has nothing to return.
func respond(w http.ResponseWriter, r *http.Request, status int, fn func() (any, error)) {
	out, err := fn()
	if err != nil {
		controller.WriteError(r.Context(), w, err)

		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)

		return
	}
	controller.WriteJSON(w, status, out)
}
