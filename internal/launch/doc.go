// Package launch starts serving containers from built images.
//
// A launch imports the OCI archive produced by the build pipeline, starts
// a container whose task runs the baked-in entry point, and probes the
// fixed bind address until it accepts TCP connections. Entry-point
// resolution failures surface as early task exit and abort the launch
// with the task's exit code; a listener that never appears aborts it with
// a timeout. In both failure modes the container is destroyed rather than
// left serving a partially-initialized application.
package launch
