// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration is declared as plain structs with `env` tags understood by
// github.com/caarlos0/env. Load caches parsed values per type, so packages
// can load their own config independently without re-reading the
// environment or disagreeing about its contents.
package config
