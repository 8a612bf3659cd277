// Package services implements the client side of the course-generation backend's HTTP API.
//
// # Transport
//
// [APIService] issues raw GET/POST requests against the configured base URL and returns an [APIResponse]
// with status, headers, body, and the decoded JSON when the body parses. It backs the `mooc api` commands.
//
// [NewHTTPClient] builds the underlying [http.Client]. When a token is configured, requests carry it as a
// bearer token through an oauth2 static token source.
//
// # Course Service
//
// [CourseService] is the contract the controller depends on; [CourseClient] implements it:
//   - POST /api/generate : one request per submission, no client-side timeout, no retry
//   - GET /api/decision-logs : per-agent decision history of the last run
//   - GET /health : backend status
//
// # Error Handling
//
// Errors wrap sentinels from the shared package:
//   - [shared.ErrAPIRequest] : the request never got an answer
//   - [shared.ErrInvalidResponse] : the answer was not the expected JSON
//   - [shared.ErrServiceUnavailable] : health check failed
//   - [shared.ErrNoResult] : the backend has no decision logs yet
//
// A response with "success": false is not an error at this layer; it is returned as a result so the
// caller can surface the server's own message.
package services
