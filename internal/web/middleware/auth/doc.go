// Package auth provides the authentication middleware for the admin API.
//
// The middleware validates the session cookie against the session store and
// rejects unauthenticated requests with a 401 JSON body. On success the
// session data is added to fiber.Locals for use in handlers.
//
// Usage:
//
//	admin.Use(authmiddleware.RequireAuth)
package auth
