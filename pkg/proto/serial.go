package proto

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var ErrPortNotFound = errors.New("serial port not found")

type Options struct {
	DTR         bool
	RTS         bool
	BaudRate    int
	ReadTimeout time.Duration
}

func DefaultOptions() *Options {
	return &Options{BaudRate: 115200, ReadTimeout: time.Second}
}

func NewSerial(name string) *Serial {
	return &Serial{name: name, list: serial.GetPortsList, stat: os.Stat}
}

type Serial struct {
	name string
	list func() ([]string, error)
	stat func(name string) (os.FileInfo, error)
	port serial.Port
}

func (s *Serial) Ports() ([]string, error) {
	return s.list()
}

// Match resolves the configured name. Device paths are used as given, since
// by-id links and ptys never show up in the port list. Other names are
// matched against the enumerated ports, an exact name winning over the first
// partial match.
func (s *Serial) Match() (string, error) {
	if strings.HasPrefix(s.name, "/dev/") {
		return s.name, nil
	}
	if _, err := s.stat(s.name); err == nil {
		return s.name, nil
	}

	ports, err := s.Ports()
	if err != nil {
		return "", errors.Wrap(err, "list serial ports")
	}

	var matched string
	for _, name := range ports {
		if name == s.name {
			return name, nil
		}
		if matched == "" && strings.Contains(name, s.name) {
			matched = name
		}
	}
	if matched == "" {
		return "", errors.Wrap(ErrPortNotFound, s.name)
	}

	return matched, nil
}

func (s *Serial) Open(opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	matched, err := s.Match()
	if err != nil {
		return err
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	if opts.DTR {
		if err := port.SetDTR(true); err != nil {
			_ = port.Close()
			return err
		}
	}

	if opts.RTS {
		if err := port.SetRTS(true); err != nil {
			_ = port.Close()
			return err
		}
	}

	if opts.ReadTimeout > 0 {
		if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
			_ = port.Close()
			return err
		}
	}

	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *Serial) Read(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, errors.New("serial port not open")
	}
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, errors.New("serial port not open")
	}
	return s.port.Write(p)
}
