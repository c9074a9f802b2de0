// Package client talks to the Plated REST API.
//
// # Overview
//
// The package provides:
//  1. The API contract (see Client): RegisterUser, GetUserProfile,
//     UpdateUser and CheckUsername.
//  2. An HTTP implementation (see HTTPClient) whose transport attaches the
//     stored session token as a bearer credential to every request and
//     hands every 401 to an UnauthorizedHandler before the caller sees it.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file that holds the session token.
//
// # Error Handling
//
// Non-2xx responses come back as *RejectionError. A 401 also matches
// ErrUnauthorized with errors.Is; transport failures match ErrUnavailable.
// Nothing is retried.
package client
