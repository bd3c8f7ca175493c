package slip39

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Reserved x-coordinates for the two-level scheme's digest and secret
// shares. These never appear as a real group or member index (both are
// 4-bit fields, 0..15) so they can share the same coordinate space as
// the random/real shares without collision.
const (
	digestIndex byte = 254
	secretIndex byte = 255

	digestLengthBytes = 4
)

// RandomSource supplies cryptographically random bytes for share
// generation. internal/secure.Reader is the production implementation,
// tests supply a deterministic one.
type RandomSource interface {
	Read(p []byte) (int, error)
}

// SplitSecret splits secret into shareCount shares such that any
// threshold of them reconstruct it. Returned shares are keyed by
// their x-coordinate, 0..shareCount-1.
func SplitSecret(secret []byte, threshold, shareCount int, rng RandomSource) (map[byte][]byte, error) {
	if len(secret) < 16 || len(secret)%2 != 0 {
		return nil, ErrInvalidSeedLength
	}
	if threshold < 1 || shareCount < threshold || shareCount > 16 {
		return nil, ErrInvalidGroupConfig
	}

	if threshold == 1 {
		out := make(map[byte][]byte, shareCount)
		for i := 0; i < shareCount; i++ {
			out[byte(i)] = append([]byte(nil), secret...)
		}
		return out, nil
	}

	randomCount := threshold - 2
	base := make(map[byte][]byte, randomCount+2)
	for i := 0; i < randomCount; i++ {
		r := make([]byte, len(secret))
		if _, err := rng.Read(r); err != nil {
			return nil, err
		}
		base[byte(i)] = r
	}

	pad := make([]byte, len(secret)-digestLengthBytes)
	if _, err := rng.Read(pad); err != nil {
		return nil, err
	}
	digest := createDigest(pad, secret)
	base[digestIndex] = append(append([]byte(nil), digest...), pad...)
	base[secretIndex] = append([]byte(nil), secret...)

	out := make(map[byte][]byte, shareCount)
	for i := 0; i < randomCount; i++ {
		out[byte(i)] = base[byte(i)]
	}
	for i := randomCount; i < shareCount; i++ {
		out[byte(i)] = interpolate(base, byte(i))
	}
	return out, nil
}

// RecoverSecret reconstructs the original secret from a threshold set
// of shares, verifying the digest share before returning.
func RecoverSecret(shares map[byte][]byte, threshold int) ([]byte, error) {
	if len(shares) != threshold {
		return nil, ErrWrongMemberCount
	}
	if threshold == 1 {
		for _, v := range shares {
			return append([]byte(nil), v...), nil
		}
	}

	length := -1
	for _, v := range shares {
		if length == -1 {
			length = len(v)
		} else if len(v) != length {
			return nil, ErrMixedShareSet
		}
	}

	secret := interpolate(shares, secretIndex)
	digestShare := interpolate(shares, digestIndex)
	if len(digestShare) < digestLengthBytes {
		return nil, ErrDigestMismatch
	}
	digest, pad := digestShare[:digestLengthBytes], digestShare[digestLengthBytes:]
	want := createDigest(pad, secret)
	if !constantTimeEqual(digest, want) {
		return nil, ErrDigestMismatch
	}
	return secret, nil
}

// createDigest is the HMAC-SHA256(pad, secret) truncated to 4 bytes
// used to verify a recovered secret.
func createDigest(pad, secret []byte) []byte {
	mac := hmac.New(sha256.New, pad)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLengthBytes]
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// interpolate evaluates, at x, the unique minimal-degree polynomial
// passing through the given points, using log-domain Lagrange
// interpolation over GF(256). If x is already one of the point
// coordinates its value is returned directly.
func interpolate(shares map[byte][]byte, x byte) []byte {
	if v, ok := shares[x]; ok {
		return append([]byte(nil), v...)
	}

	ensureGF256Tables()

	length := -1
	for _, v := range shares {
		if length == -1 {
			length = len(v)
		}
	}

	logProd := 0
	for sx := range shares {
		logProd += int(logTable[sx^x])
	}

	result := make([]byte, length)
	for sx, sv := range shares {
		sum := 0
		for ox := range shares {
			if ox == sx {
				continue
			}
			sum += int(logTable[sx^ox])
		}
		logBasis := mod255(logProd - int(logTable[sx^x]) - sum)

		for i, b := range sv {
			if b == 0 {
				continue
			}
			result[i] ^= expTable[mod255(int(logTable[b])+logBasis)]
		}
	}
	return result
}
