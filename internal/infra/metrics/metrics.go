// File: internal/infra/metrics/metrics.go
package metrics

import "strings"

// namespace prefixes every collector exported by this service.
const namespace = "onboarding"

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
