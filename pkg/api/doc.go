// Package api implements the Rally HTTP surface.
//
// Routes are mounted under two prefixes:
//
//	POST   /api/users/register        public
//	POST   /api/users/login           public
//	GET    /api/users/profile         auth
//	GET    /api/events                public
//	GET    /api/events/upcoming       public
//	GET    /api/events/type/{sport}   public
//	GET    /api/events/date?from&to   public
//	GET    /api/events/{id}           public
//	POST   /api/events                auth
//	PUT    /api/events/{id}           auth + ownership
//	DELETE /api/events/{id}           auth + ownership
//
// The auth gate (pkg/middleware) is applied per-route. Mutations on events
// additionally enforce the ownership policy: load the event, compare its
// organizer to the authenticated user, and only then mutate. Authorization
// failures short-circuit before any write.
//
// Unexpected failures are logged server-side and collapse into a generic
// 500 body so internal details never reach clients.
package api
