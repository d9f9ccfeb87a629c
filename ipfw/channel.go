package ipfw

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Op is a control request understood by Channel.Control.
type Op int

const (
	OpInit Op = iota + 1
	OpTerm
	OpAdd
	OpDel
	OpGet
)

func (o Op) String() string {
	switch o {
	case OpInit:
		return "init"
	case OpTerm:
		return "term"
	case OpAdd:
		return "add"
	case OpDel:
		return "del"
	case OpGet:
		return "get"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// logger is used when Config.Logger is nil and by the validators.
var logger = log.WithField("component", "ipfw")

// DefaultMaxRules bounds RuleSet growth when Config.MaxRules is zero.
const DefaultMaxRules = 65535

// Config holds the parameters of a Channel.
type Config struct {
	ABI ABI
	// Opener creates the control socket. Defaults to SystemOpener().
	Opener Opener
	// Strategies is the probe order for the first Open. Defaults to
	// DefaultStrategies().
	Strategies []Strategy
	// MaxRules caps the number of records a RuleSet may grow to.
	MaxRules int
	Logger   *log.Entry
}

// Channel owns the control socket used to talk to ipfw. It is not safe for
// concurrent use.
type Channel struct {
	abi        ABI
	opener     Opener
	candidates []Strategy
	// strategy is fixed by the first successful probe and reused afterwards.
	strategy Strategy
	sock     Socket
	maxRules int
	log      *log.Entry
}

// NewChannel returns a closed channel. No socket is created until Open.
func NewChannel(cfg Config) *Channel {
	c := &Channel{
		abi:        cfg.ABI,
		opener:     cfg.Opener,
		candidates: cfg.Strategies,
		maxRules:   cfg.MaxRules,
		log:        cfg.Logger,
	}
	if c.opener == nil {
		c.opener = SystemOpener()
	}
	if len(c.candidates) == 0 {
		c.candidates = DefaultStrategies()
	}
	if c.maxRules <= 0 {
		c.maxRules = DefaultMaxRules
	}
	if c.log == nil {
		c.log = logger
	}
	return c
}

// ABI returns the ABI the channel was configured with.
func (c *Channel) ABI() ABI {
	return c.abi
}

// Strategy reports the socket kind chosen by the probe, or StrategyNone if
// the channel has never been opened.
func (c *Channel) Strategy() Strategy {
	return c.strategy
}

// Initialized reports whether the control socket is open.
func (c *Channel) Initialized() bool {
	return c.sock != nil
}

// Open creates the control socket. It is a no-op when the socket is already
// open.
func (c *Channel) Open() error {
	_, err := c.Control(OpInit, nil)
	return err
}

// Close releases the control socket. It is a no-op on a closed channel.
func (c *Channel) Close() error {
	_, err := c.Control(OpTerm, nil)
	return err
}

// AddRule forwards one raw rule record to the kernel.
func (c *Channel) AddRule(rule []byte) error {
	_, err := c.Control(OpAdd, rule)
	return err
}

// DeleteRule asks the kernel to remove the rule described by the raw record.
func (c *Channel) DeleteRule(rule []byte) error {
	_, err := c.Control(OpDel, rule)
	return err
}

// Control dispatches a single control request. For OpGet, buf is both the
// query and the reply buffer and the returned int is the number of bytes the
// kernel wrote. Every failure is logged before it is returned.
func (c *Channel) Control(op Op, buf []byte) (int, error) {
	switch op {
	case OpInit:
		if c.sock != nil {
			return 0, nil
		}
		return 0, c.openSocket()
	case OpTerm:
		if c.sock == nil {
			return 0, nil
		}
		sock := c.sock
		c.sock = nil
		if err := sock.Close(); err != nil {
			c.log.WithError(err).Error("close()")
			return 0, fmt.Errorf("closing ipfw socket: %w", err)
		}
		return 0, nil
	case OpAdd, OpDel:
		if c.sock == nil {
			c.log.Error(ErrNotInitialized.Error())
			return 0, ErrNotInitialized
		}
		opt := c.abi.OptAdd
		if op == OpDel {
			opt = c.abi.OptDel
		}
		if err := c.sock.SetOption(opt, buf); err != nil {
			c.log.WithError(err).Errorf("setsockopt(%d)", opt)
			return 0, fmt.Errorf("%w: setsockopt(%d): %w", ErrKernelRejected, opt, err)
		}
		return 0, nil
	case OpGet:
		if c.sock == nil {
			c.log.Error(ErrNotInitialized.Error())
			return 0, ErrNotInitialized
		}
		n, err := c.sock.GetOption(c.abi.OptGet, buf)
		if err != nil {
			c.log.WithError(err).Errorf("getsockopt(%d)", c.abi.OptGet)
			return 0, fmt.Errorf("%w: getsockopt(%d): %w", ErrKernelQuery, c.abi.OptGet, err)
		}
		if n < 0 || n > len(buf) {
			c.log.Errorf("getsockopt(%d): kernel reported %d bytes for a %d byte buffer", c.abi.OptGet, n, len(buf))
			return 0, fmt.Errorf("%w: getsockopt(%d) reported %d bytes, capacity is %d",
				ErrKernelQuery, c.abi.OptGet, n, len(buf))
		}
		return n, nil
	default:
		c.log.WithField("op", op).Error(ErrUnhandledOperation.Error())
		return 0, fmt.Errorf("%w: %s", ErrUnhandledOperation, op)
	}
}

func (c *Channel) openSocket() error {
	if c.strategy != StrategyNone {
		sock, err := c.opener.Open(c.strategy)
		if err != nil {
			c.log.WithError(err).Errorf("socket(%s)", c.strategy)
			return fmt.Errorf("%w: %s: %w", ErrSocketCreation, c.strategy, err)
		}
		c.sock = sock
		return nil
	}

	var lastErr error
	for _, s := range c.candidates {
		sock, err := c.opener.Open(s)
		if err != nil {
			c.log.WithError(err).Debugf("socket(%s) unavailable", s)
			lastErr = err
			continue
		}
		c.strategy = s
		c.sock = sock
		c.log.Debugf("using %s socket for ipfw control", s)
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no socket strategy configured")
	}
	c.log.WithError(lastErr).Error("socket()")
	return fmt.Errorf("%w: %w", ErrSocketCreation, lastErr)
}

// FetchRuleset performs one kernel round trip for the ruleset. It grows rs
// to hold *total+batch records, stamps the API version into the first slot,
// and asks the kernel to fill the buffer. *total is then set to the number
// of whole records the kernel returned, and the difference from the previous
// total is returned. The difference is negative if the ruleset shrank
// between calls.
//
// The caller drains a large ruleset by calling again until the kernel
// returns fewer records than were offered. rs must be released by the
// caller even when an error is returned.
func (c *Channel) FetchRuleset(rs *RuleSet, total *int, batch int) (int, error) {
	if rs == nil || total == nil || *total < 0 || batch < 1 {
		c.log.Errorf("fetch ruleset: invalid arguments (batch=%d)", batch)
		return 0, fmt.Errorf("%w: ruleset buffer, total and batch size must be valid", ErrInvalidArgument)
	}
	if c.abi.RuleSize < versionLen {
		c.log.Errorf("fetch ruleset: rule size %d is unusable", c.abi.RuleSize)
		return 0, fmt.Errorf("%w: rule size %d", ErrInvalidArgument, c.abi.RuleSize)
	}
	if c.sock == nil {
		c.log.Error(ErrNotInitialized.Error())
		return 0, ErrNotInitialized
	}

	if err := rs.grow(*total+batch, c.abi.RuleSize, c.maxRules); err != nil {
		c.log.WithError(err).Error("fetch ruleset: resize")
		return 0, err
	}
	c.abi.StampVersion(rs.buf)

	n, err := c.Control(OpGet, rs.buf)
	if err != nil {
		return 0, err
	}

	fetched := *total
	*total = n / c.abi.RuleSize
	rs.count = *total
	return *total - fetched, nil
}

// FetchAll drains the kernel ruleset into a new RuleSet, growing it by up to
// batch records per round trip. The last request is trimmed to the record
// limit; a kernel that still fills the buffer at the limit is reported as
// ErrAllocation.
func (c *Channel) FetchAll(batch int) (*RuleSet, error) {
	rs := &RuleSet{}
	total := 0
	for {
		if total >= c.maxRules {
			rs.Release()
			c.log.Errorf("fetch ruleset: kernel ruleset exceeds %d records", c.maxRules)
			return nil, fmt.Errorf("%w: ruleset exceeds the limit of %d records", ErrAllocation, c.maxRules)
		}
		req := min(batch, c.maxRules-total)
		offered := total + req
		if _, err := c.FetchRuleset(rs, &total, req); err != nil {
			rs.Release()
			return nil, err
		}
		if total < offered {
			return rs, nil
		}
	}
}
