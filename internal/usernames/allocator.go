package usernames

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

// MaxUsernameLength bounds generated usernames including the salt.
const MaxUsernameLength = 40

const saltLength = 6

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespace = regexp.MustCompile(`\s+`)

// Slugify lowercases a display name and reduces it to hyphen-separated
// alphanumeric runs.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Generate derives a username candidate from a display name. The slug is
// truncated so the trailing salt always fits within MaxUsernameLength.
func Generate(name string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "user"
	}

	base := slug + "-"
	if len(base) > MaxUsernameLength-saltLength {
		base = base[:MaxUsernameLength-saltLength]
	}
	return base + randomSalt()
}

func randomSalt() string {
	var b strings.Builder
	b.Grow(saltLength)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < saltLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure is not recoverable here; fall back to
			// a fixed character so allocation can still proceed.
			b.WriteByte('0')
			continue
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}
	return b.String()
}
