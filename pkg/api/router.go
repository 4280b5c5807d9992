package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// HandlerFunc is the signature of API handlers.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// Route is a registered method and pattern.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// Router matches routes in registration order. Patterns may hold :name
// segments, read back with PathParam.
type Router struct {
	routes []Route
	mu     sync.RWMutex

	NotFound http.Handler
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "The requested resource was not found")
		}),
	}
}

// Handle registers handler for method and pattern.
func (rt *Router) Handle(method, pattern string, handler HandlerFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.routes = append(rt.routes, Route{Method: method, Pattern: pattern, Handler: handler})
}

// GET registers a GET route.
func (rt *Router) GET(pattern string, handler HandlerFunc) {
	rt.Handle(http.MethodGet, pattern, handler)
}

// POST registers a POST route.
func (rt *Router) POST(pattern string, handler HandlerFunc) {
	rt.Handle(http.MethodPost, pattern, handler)
}

// Routes returns the registered routes.
func (rt *Router) Routes() []Route {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]Route, len(rt.routes))
	copy(out, rt.routes)
	return out
}

// ServeHTTP dispatches to the first matching route. A path that matches
// with another method answers 405.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	methodMismatch := false
	for _, route := range rt.routes {
		params, matched := matchPath(route.Pattern, r.URL.Path)
		if !matched {
			continue
		}
		if route.Method != r.Method {
			methodMismatch = true
			continue
		}
		if len(params) > 0 {
			r = setPathParams(r, params)
		}
		route.Handler(w, r)
		return
	}

	if methodMismatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed for this resource")
		return
	}
	rt.NotFound.ServeHTTP(w, r)
}

// matchPath matches /api/students/:id against /api/students/STU001.
func matchPath(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := make(map[string]string)
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
		} else if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

type contextKey string

const pathParamsKey contextKey = "pathParams"

func setPathParams(r *http.Request, params map[string]string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), pathParamsKey, params))
}

// PathParam returns a :name segment of the matched route.
func PathParam(r *http.Request, name string) string {
	params, ok := r.Context().Value(pathParamsKey).(map[string]string)
	if !ok {
		return ""
	}
	return params[name]
}

// ---- Responses ----

// APIResponse wraps every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError is the error half of an APIResponse.
type APIError struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Context     map[string]string `json:"context,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

// WriteJSON writes data in a success envelope.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// WriteError writes an error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeAPIError(w, status, &APIError{Code: code, Message: message})
}

func writeAPIError(w http.ResponseWriter, status int, e *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: e})
}

// WriteReportError writes err with the status its code maps to.
func WriteReportError(w http.ResponseWriter, err error) {
	re, ok := rerrors.AsReportError(err)
	if !ok {
		WriteError(w, http.StatusInternalServerError, rerrors.ErrInternal, err.Error())
		return
	}
	writeAPIError(w, StatusFor(err), &APIError{
		Code:        re.Code,
		Message:     re.Message,
		Context:     re.Context,
		Suggestions: re.Suggestions,
	})
}

// StatusFor maps an error onto an HTTP status.
func StatusFor(err error) int {
	switch rerrors.CodeOf(err) {
	case rerrors.ErrDataNotFound:
		return http.StatusNotFound
	case rerrors.ErrDataEmptyQuery, rerrors.ErrRenderInvalidChart, rerrors.ErrRenderUnknownRenderer:
		return http.StatusBadRequest
	}
	switch {
	case rerrors.IsCategory(err, rerrors.CategoryValidation):
		return http.StatusBadRequest
	case rerrors.IsCategory(err, rerrors.CategoryFeedback):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// ReadJSON decodes the request body into target, rejecting unknown fields.
func ReadJSON(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return rerrors.Validationf(rerrors.ErrValidationInvalid, "invalid request body: %v", err)
	}
	return nil
}
