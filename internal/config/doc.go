// Package config loads service configuration from an optional YAML file
// with an environment-variable overlay. Environment values win over file
// values; both win over struct defaults.
package config
