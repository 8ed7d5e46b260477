// Package generator produces random passwords from the configured character
// classes and classifies their strength.
package generator

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/logger"
	"github.com/doeshing/passgen/internal/ports"
)

// rangeSize is the number of distinct values one 32-bit draw can take.
const rangeSize = uint64(1) << 32

// Service implements generate, adjustLength and classify.
type Service struct {
	Config domain.Config
	Random io.Reader
	Logger ports.Logger
}

// New builds a Service reading from crypto/rand.
func New(cfg domain.Config, log ports.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Config: cfg, Random: rand.Reader, Logger: log}
}

// Generate draws length characters uniformly from the alphabet pooled from
// the enabled classes. It has no side effects.
func (s *Service) Generate(length int, opts domain.GenerationOptions) (domain.Password, error) {
	if opts.IsEmpty() {
		return "", errors.WithHint(domain.ErrNoCharsetSelected, "enable at least one character class")
	}
	if !s.Config.InBounds(length) {
		return "", errors.Wrapf(domain.ErrLengthOutOfRange, "length %d not in [%d, %d]",
			length, s.Config.Length.Min, s.Config.Length.Max)
	}
	alphabet, err := s.Config.Alphabet(opts)
	if err != nil {
		return "", err
	}

	pool := []rune(alphabet)
	var b strings.Builder
	b.Grow(length)
	buf := make([]byte, 4)
	for i := 0; i < length; i++ {
		idx, err := s.index(len(pool), buf)
		if err != nil {
			return "", errors.Wrap(err, "read random source")
		}
		b.WriteRune(pool[idx])
	}

	s.Logger.Debug("password generated", map[string]interface{}{
		"length":   length,
		"classes":  opts.Classes(),
		"alphabet": len(pool),
	})
	return domain.Password(b.String()), nil
}

// index maps one 32-bit draw onto [0, n) by value mod n. Draws from the
// incomplete final block of the range are redrawn so every index is equally
// likely.
func (s *Service) index(n int, buf []byte) (int, error) {
	limit := rangeSize - rangeSize%uint64(n)
	for {
		if _, err := io.ReadFull(s.random(), buf); err != nil {
			return 0, err
		}
		v := uint64(binary.BigEndian.Uint32(buf))
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}

func (s *Service) random() io.Reader {
	if s.Random == nil {
		return rand.Reader
	}
	return s.Random
}

// AdjustLength applies delta to current. A result outside the configured
// bounds is rejected and current is returned unchanged.
func (s *Service) AdjustLength(current, delta int) int {
	next := current + delta
	if !s.Config.InBounds(next) {
		return current
	}
	return next
}

// ClampLength pins an absolute length request to the configured bounds.
func (s *Service) ClampLength(length int) int {
	return s.Config.ClampLength(length)
}

// Classify returns the strength tier for length.
func (s *Service) Classify(length int) (domain.StrengthTier, error) {
	return s.Config.TierFor(length)
}
