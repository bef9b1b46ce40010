package http

import (
	"encoding/json"
	"net/http"
)

// Response wraps http.ResponseWriter with Laravel-style helpers. A
// Response may carry a CookieJar; queued cookies are attached before the
// first byte of any body helper is written.
type Response struct {
	w   http.ResponseWriter
	jar *CookieJar
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// WithCookies attaches a jar whose queued cookies are sent with the
// response.
func (res *Response) WithCookies(jar *CookieJar) *Response {
	res.jar = jar
	return res
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// Cookie queues a single cookie on the response.
func (res *Response) Cookie(name, value string, minutes int) *Response {
	if res.jar == nil {
		res.jar = NewCookieJar()
	}
	res.jar.Queue(name, value, minutes)
	return res
}

func (res *Response) attachCookies() {
	if res.jar != nil {
		res.jar.Attach(res.w)
	}
}

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.attachCookies()
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.attachCookies()
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.JSON(http.StatusUnauthorized, envelope{"message": first(message, "Unauthenticated.")})
}

// Forbidden sends 403.
func (res *Response) Forbidden(message ...string) {
	res.JSON(http.StatusForbidden, envelope{"message": first(message, "This action is unauthorized.")})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.JSON(http.StatusNotFound, envelope{"message": first(message, "Not found.")})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.JSON(http.StatusInternalServerError, envelope{"message": first(message, "Server Error.")})
}

// ── Redirects ────────────────────────────────────────────────────────────────

// RedirectTo performs a 302 redirect.
func (res *Response) RedirectTo(url string) {
	res.attachCookies()
	res.w.Header().Set("Location", url)
	res.w.WriteHeader(http.StatusFound)
}

// RedirectBack redirects to the Referer header (or fallback URL).
func (res *Response) RedirectBack(r *http.Request, fallback string) {
	ref := r.Referer()
	if ref == "" {
		ref = fallback
	}
	res.RedirectTo(ref)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
