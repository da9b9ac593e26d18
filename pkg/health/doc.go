// Package health runs named readiness checks against the jar backends.
//
// [Run] executes [Checks] concurrently under one timeout and is used by the
// ping command. [LivenessHandler] and [ReadinessHandler] expose the same
// result over HTTP for the inspection server:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis": redis.Healthcheck(client),
//	}))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the
// client asks for JSON with Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"..."}}}
package health
