package recorder

import (
	"context"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Listen feeds input port number port into r until ctx is done.
func (r *Recorder) Listen(ctx context.Context, port int) error {
	in, err := gomidi.InPort(port)
	if err != nil {
		return errors.Wrapf(err, "can't find midi input %d", port)
	}
	defer in.Close()

	stop, err := gomidi.ListenTo(in, r.Handle)
	if err != nil {
		return errors.Wrapf(err, "can't listen to %v", in)
	}
	r.logger().Info("recording", "port", in.String(), "bpm", r.bpm)

	<-ctx.Done()
	stop()
	return nil
}
