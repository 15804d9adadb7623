package grpckel

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kelp.dev/kelp/sources"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return sources.ErrNotFound
	default:
		// Best-effort: if the server sent a known sources error message, preserve it.
		if st.Message() == sources.ErrNotFound.Error() {
			return sources.ErrNotFound
		}
		return err
	}
}
