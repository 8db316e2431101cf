// Package logging provides a small leveled logging facade over the standard
// log package. The level is read from the DEBUG and LOG_LEVEL environment
// variables at startup and can be changed at runtime with SetLevel.
package logging
