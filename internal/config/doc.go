// Package config loads the trellis configuration.
//
// Configuration comes from ~/.config/trellis/config.toml (or an explicit
// path) and is overridden by the API_BASE_URL and SENSING_GARDEN_API_KEY
// environment variables, so deployments that already export Sensing Garden
// credentials need no config file at all. A missing file is not an error;
// missing credentials only fail once a command actually needs the API.
package config
