// Package logger is a standardized event logging framework for the shell.
package logger
