// Package config loads the run settings from the process environment and an
// optional .env file.
//
// Values set in the environment win over the .env file. Load validates the
// combination of settings required by the selected test mode and output
// type, and reports every problem at once in a *ConfigurationError.
package config
