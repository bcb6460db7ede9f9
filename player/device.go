package player

import (
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Open acquires output port number port. The returned release func closes
// the port; the caller owns both and must release after the last Play.
// A driver has to be registered, e.g. by importing rtmididrv.
func Open(port int) (*Player, func(), error) {
	out, err := gomidi.OutPort(port)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "can't find midi output %d", port)
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		out.Close()
		return nil, nil, errors.Wrapf(err, "can't open midi output %v", out)
	}
	release := func() {
		out.Close()
	}
	return New(send), release, nil
}
