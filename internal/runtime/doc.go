// Package runtime manages containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon and provides image import
// and container creation. OCI archives are imported into the content
// store, tagged, unpacked for the host platform, and used to create
// containers with overlayfs snapshots.
//
// Two kinds of containers exist. Build containers run a placeholder task
// so that build steps (installer commands, tar-stream copies) can exec
// against a live process. Serving containers run the entry point baked
// into the image config as the primary task, and expose the task's exit
// status so callers can fail fast when the entry point cannot start.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "mvpd")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.StartBuildContainer(ctx, "base.tar", "build-1")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "/bin/sh", "pip install fastapi", nil, "/opt/app")
//	if err != nil {
//	    return err
//	}
//
//	if err := ctr.Export(ctx, "dist/image.tar", runtime.ExportOptions{}); err != nil {
//	    return err
//	}
package runtime
