// Package server runs an http.Handler with configured timeouts and graceful
// shutdown.
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, router))
//	return eg.Wait()
//
// Run blocks until ctx is cancelled, then shuts the server down within the
// shutdown timeout. TLS is enabled when Config names a certificate and key.
package server
