package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rentalmanager/internal/database"
	"rentalmanager/internal/schema"
)

type record interface {
	GetID() int64
}

// resource serves the CRUD routes of one entity. Request bodies are merged
// with the server owned fields and decoded by the entity's wire schema, so
// the server accepts exactly what the client transformer accepts.
type resource[E record] struct {
	h       *Handler
	name    string
	plural  string
	idParam string
	decode  func([]byte) (E, error)

	// parents narrows queries to the parent records named in the path
	parents func(c *gin.Context) ([]database.Scope, error)
	// inject copies parent ids from the path into a create body
	inject func(c *gin.Context, body map[string]any) error
	// filters turns query parameters into scopes
	filters func(c *gin.Context) []database.Scope
	// beforeSave runs inside the write transaction; existing is nil on create
	beforeSave func(tx *gorm.DB, body map[string]any, rec *E, existing *E) error
	// afterSave runs inside the write transaction once rec has its id
	afterSave func(tx *gorm.DB, body map[string]any, rec *E, existing *E) error
	// embed attaches related records to a response
	embed func(db *gorm.DB, recs []E)
	// present converts a record to its wire form when it differs from E
	present func(rec E) any
}

// serverFields are assigned by the server and ignored in request bodies.
var serverFields = []string{"id", "createdAt", "updatedAt"}

func (r *resource[E]) mount(group *gin.RouterGroup, path string) {
	member := path + "/:" + r.idParam
	group.GET(path, r.list)
	group.POST(path, r.create)
	group.GET(member, r.get)
	group.PATCH(member, r.update)
	group.DELETE(member, r.remove)
}

func (r *resource[E]) title() string {
	return strings.ToUpper(r.name[:1]) + r.name[1:]
}

func (r *resource[E]) scopes(c *gin.Context) ([]database.Scope, bool) {
	if r.parents == nil {
		return nil, true
	}
	scopes, err := r.parents(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return scopes, true
}

func (r *resource[E]) list(c *gin.Context) {
	scopes, ok := r.scopes(c)
	if !ok {
		return
	}
	if r.filters != nil {
		scopes = append(scopes, r.filters(c)...)
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := database.List[E](r.h.db.DB(), database.Page{Page: page, Limit: limit}, scopes...)
	if err != nil {
		r.h.logger.WithError(err).Errorf("Failed to list %s", r.plural)
		respondError(c, http.StatusInternalServerError, "Failed to fetch "+r.plural)
		return
	}
	if r.embed != nil {
		r.embed(r.h.db.DB(), result.Records)
	}

	c.JSON(http.StatusOK, gin.H{
		"results":      r.presentAll(result.Records),
		"page":         result.Page,
		"limit":        result.Limit,
		"totalPages":   result.TotalPages,
		"totalResults": result.TotalResults,
	})
}

// load reads the record named by the path, answering 400 or 404 itself.
func (r *resource[E]) load(c *gin.Context) (E, bool) {
	var zero E
	id, err := strconv.ParseInt(c.Param(r.idParam), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s id", r.name))
		return zero, false
	}
	scopes, ok := r.scopes(c)
	if !ok {
		return zero, false
	}

	rec, err := database.Get[E](r.h.db.DB(), id, scopes...)
	if errors.Is(err, database.ErrNotFound) {
		respondError(c, http.StatusNotFound, r.title()+" not found")
		return zero, false
	}
	if err != nil {
		r.h.logger.WithError(err).WithField("id", id).Errorf("Failed to get %s", r.name)
		respondError(c, http.StatusInternalServerError, "Failed to fetch "+r.name)
		return zero, false
	}
	return rec, true
}

func (r *resource[E]) get(c *gin.Context) {
	rec, ok := r.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r.presentOne(rec))
}

func (r *resource[E]) create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	if r.inject != nil {
		if err := r.inject(c, body); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	body["id"] = 0

	rec, ok := r.decodeBody(c, body)
	if !ok {
		return
	}
	if !r.save(c, body, &rec, nil) {
		return
	}
	c.JSON(http.StatusCreated, r.presentOne(rec))
}

func (r *resource[E]) update(c *gin.Context) {
	existing, ok := r.load(c)
	if !ok {
		return
	}
	patch, ok := readBody(c)
	if !ok {
		return
	}

	current, err := json.Marshal(existing)
	if err != nil {
		r.h.logger.WithError(err).Errorf("Failed to encode %s", r.name)
		respondError(c, http.StatusInternalServerError, "Failed to update "+r.name)
		return
	}
	merged := map[string]any{}
	if err := json.Unmarshal(current, &merged); err != nil {
		r.h.logger.WithError(err).Errorf("Failed to encode %s", r.name)
		respondError(c, http.StatusInternalServerError, "Failed to update "+r.name)
		return
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = existing.GetID()

	rec, ok := r.decodeBody(c, merged)
	if !ok {
		return
	}
	if !r.save(c, patch, &rec, &existing) {
		return
	}
	c.JSON(http.StatusOK, r.presentOne(rec))
}

func (r *resource[E]) remove(c *gin.Context) {
	rec, ok := r.load(c)
	if !ok {
		return
	}
	if err := database.Delete[E](r.h.db.DB(), rec.GetID()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(c, http.StatusNotFound, r.title()+" not found")
			return
		}
		r.h.logger.WithError(err).WithField("id", rec.GetID()).Errorf("Failed to delete %s", r.name)
		respondError(c, http.StatusInternalServerError, "Failed to delete "+r.name)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *resource[E]) decodeBody(c *gin.Context, body map[string]any) (E, bool) {
	raw, err := json.Marshal(body)
	if err != nil {
		var zero E
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return zero, false
	}
	rec, err := r.decode(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return rec, false
	}
	return rec, true
}

func (r *resource[E]) save(c *gin.Context, body map[string]any, rec *E, existing *E) bool {
	verb := "create"
	if existing != nil {
		verb = "update"
	}

	err := r.h.db.DB().Transaction(func(tx *gorm.DB) error {
		if r.beforeSave != nil {
			if err := r.beforeSave(tx, body, rec, existing); err != nil {
				return err
			}
		}
		var err error
		if existing == nil {
			err = database.Create(tx, rec)
		} else {
			err = database.Save(tx, rec)
		}
		if err != nil {
			return err
		}
		if r.afterSave != nil {
			return r.afterSave(tx, body, rec, existing)
		}
		return nil
	})

	var reqErr *requestError
	switch {
	case err == nil:
		return true
	case errors.As(err, &reqErr):
		respondError(c, reqErr.status, reqErr.message)
	case schema.IsValidationError(err):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		r.h.logger.WithError(err).Errorf("Failed to %s %s", verb, r.name)
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", verb, r.name))
	}
	return false
}

func (r *resource[E]) presentOne(rec E) any {
	recs := []E{rec}
	if r.embed != nil {
		r.embed(r.h.db.DB(), recs)
	}
	if r.present == nil {
		return recs[0]
	}
	return r.present(recs[0])
}

func (r *resource[E]) presentAll(recs []E) any {
	if r.present == nil {
		return recs
	}
	out := make([]any, len(recs))
	for i, rec := range recs {
		out[i] = r.present(rec)
	}
	return out
}

// requestError is a hook failure reported to the caller as is.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func readBody(c *gin.Context) (map[string]any, bool) {
	body := map[string]any{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	for _, field := range serverFields {
		delete(body, field)
	}
	return body, true
}

// pathID parses a parent id from the path; an absent parameter yields 0.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// queryFilters maps query parameters to equality scopes on columns.
func queryFilters(c *gin.Context, columns map[string]string) []database.Scope {
	var scopes []database.Scope
	for param, column := range columns {
		if v := strings.TrimSpace(c.Query(param)); v != "" {
			scopes = append(scopes, database.Where(column, v))
		}
	}
	return scopes
}

// nameFilter matches the name query parameter against column.
func nameFilter(c *gin.Context, column string) []database.Scope {
	if v := strings.TrimSpace(c.Query("name")); v != "" {
		return []database.Scope{database.Like(column, v)}
	}
	return nil
}
