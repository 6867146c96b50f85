// Package shared holds utilities used across the codebase that belong to
// no specific domain layer. Currently that is the testutil subpackage:
// a buffered slog handler for asserting on log output, and fixture
// builders for chart payloads used in package tests.
package shared
