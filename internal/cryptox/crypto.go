// Package cryptox hashes and checks account passwords.
//
// Three encodings are supported and can coexist in one credential store:
//
//	sha256    64 lowercase hex chars, unsalted (users.json written by older releases)
//	argon2id  $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>   (base64, no padding)
//	bcrypt    $2a$... / $2b$...
//
// Detect picks the scheme from an encoded hash, so changing the configured
// scheme only affects passwords set afterwards.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gradesys/internal/common"
)

// Scheme names accepted by ParseScheme.
const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

var ErrUnknownScheme = errors.New("unknown password hash scheme")

// Hasher encodes passwords and checks them against an encoded hash.
type Hasher interface {
	Hash(password []byte) (string, error)
	Matches(encoded string, password []byte) bool
}

// ParseScheme returns the hasher for a configured scheme name.
func ParseScheme(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemeSHA256, "":
		return SHA256Hasher{}, nil
	case SchemeArgon2ID, "argon2":
		return DefaultArgon2(), nil
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// Detect returns the hasher able to check encoded.
func Detect(encoded string) Hasher {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return Argon2Hasher{}
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return BcryptHasher{}
	default:
		return SHA256Hasher{}
	}
}

// Matches checks password against encoded using the scheme encoded was made with.
func Matches(encoded string, password []byte) bool {
	return Detect(encoded).Matches(encoded, password)
}

// SHA256Hasher is the unsalted single-round digest used by existing
// users.json files. Prefer argon2id for new installs.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password []byte) (string, error) {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Matches(encoded string, password []byte) bool {
	want, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(encoded)), []byte(want)) == 1
}

type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// Bounds accepted when reading parameters back from a stored hash.
const (
	maxArgon2Time   = 64
	maxArgon2Memory = 1024 * 1024 // KiB
)

// DefaultArgon2 returns parameters sized for an interactive login.
func DefaultArgon2() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h Argon2Hasher) Hash(password []byte) (string, error) {
	salt, err := common.GenerateRandByteArray(h.SaltLen)
	if err != nil {
		return "", fmt.Errorf("argon2 salt: %w", err)
	}
	key := argon2.IDKey(password, salt, h.Time, h.Memory, h.Threads, h.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Matches reads the parameters from encoded, ignoring the receiver's.
func (Argon2Hasher) Matches(encoded string, password []byte) bool {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var (
		memory, time uint32
		threads      uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if time < 1 || time > maxArgon2Time || threads < 1 ||
		memory < 8*uint32(threads) || memory > maxArgon2Memory {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}
	candidate := argon2.IDKey(password, salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password []byte) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Matches(encoded string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), password) == nil
}
