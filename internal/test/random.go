package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	loginAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#%&*"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomLogin returns a lowercase login of 7 to 14 characters.
func RandomLogin() string {
	return randomString(loginAlphabet, 7, 14)
}

// RandomPassword returns a password bcrypt accepts (6 to 72 bytes).
func RandomPassword() string {
	return randomString(passwordAlphabet, 16, 32)
}

// RandomCardNumber returns a Luhn-valid 16 digit number starting with prefix.
func RandomCardNumber(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for b.Len() < 15 {
		b.WriteByte(byte('0' + randomIntn(10)))
	}
	body := b.String()
	return body + string(rune('0'+luhnCheckDigit(body)))
}

// luhnCheckDigit computes the digit that makes body+digit pass the Luhn test.
func luhnCheckDigit(body string) int {
	sum := 0
	double := true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

func randomString(alphabet string, minLen, maxLen int) string {
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[randomIntn(len(alphabet))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
