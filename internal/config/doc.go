// Package config loads the optional TOML application config and persists the
// UI theme preference as JSON.
package config
