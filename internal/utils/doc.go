// Package utils holds the configuration and logging plumbing shared by the useraudit commands.
//
// ConfigurationLoader layers embedded defaults, an optional configuration file, and
// USERAUDIT_* environment variables through Viper. LoggerFactory builds zap loggers
// that write to standard error so that reports on standard output stay clean.
package utils
