// Package httputil provides HTTP utilities for standardized request and
// response handling.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, event)
//	httputil.WriteCreated(w, event)
//	httputil.WriteMessage(w, http.StatusOK, "event deleted")
//	httputil.WriteUnauthorized(w, "no token")
//	httputil.WriteFieldErrors(w, errs) // 400 {"errors":[...]}
//
// Error bodies follow a single shape: {"message": string}, or
// {"errors": [{"field","message"}]} for field validation failures.
//
// # Request Parsing
//
//	var req createEventRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // 400 already written
//	}
//	id, ok := httputil.ParsePathStringOrError(w, r, "id")
//
// # Validation
//
//	var errs []httputil.FieldError
//	errs = httputil.RequireMinLength(errs, "username", req.Username, 3)
//	errs = httputil.RequireNonEmpty(errs, "ubicacion", req.Location)
//	if len(errs) > 0 {
//		httputil.WriteFieldErrors(w, errs)
//		return
//	}
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.CORSMiddleware(cfg.Server.CORSOrigins),
//		httputil.ContentTypeMiddleware,
//		httputil.MaxBytesMiddleware(1<<20),
//	)
//
// # Related Packages
//
//   - pkg/middleware: bearer-token authentication gate
package httputil
