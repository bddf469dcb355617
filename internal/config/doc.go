// Loads service configuration from file and environment.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// config file, and MVPD_-prefixed environment variables (highest priority).
// The server host and port default to the fixed bind tuple from the image
// descriptor: 127.0.0.1:8000.
package config
