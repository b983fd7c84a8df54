package osutils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// MaximumPasswordLength is the longest password GenerateRandomPassword is
// asked for.
const MaximumPasswordLength = 20

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!#$%&()*+,-./:;<=>?@[]^_{|}~"
)

var passwordClasses = []string{upperChars, lowerChars, digitChars, symbolChars}

// GenerateRandomPassword returns a password of length characters drawn from
// crypto/rand. When length allows it, every character class is present.
func GenerateRandomPassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}

	all := upperChars + lowerChars + digitChars + symbolChars
	buf := make([]byte, 0, length)
	if length >= len(passwordClasses) {
		for _, class := range passwordClasses {
			c, err := randomChar(class)
			if err != nil {
				return "", err
			}
			buf = append(buf, c)
		}
	}
	for len(buf) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates so the guaranteed characters are not always first.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random data: %w", err)
	}
	return int(v.Int64()), nil
}
