// Provides platform-appropriate paths for the service.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The service name "mvpd" is used as the subdirectory
// under each base path. Persistent data (the product database) lives under
// the data directory, cached dependency layers under the cache directory,
// and PID files under the runtime directory.
package paths
