package shortener

import "github.com/jaevor/go-nanoid"

const (
	// CodeLength is the fixed length of generated short codes.
	CodeLength = 8

	// codeAlphabet is the 62-symbol base62 alphabet. 62^8 candidate
	// codes make blind collisions vanishingly unlikely, so the shorten
	// loop can afford a cheap generate-then-check strategy.
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// CodeGenerator produces candidate short codes. Each call is
// independent; uniqueness is enforced by the shorten loop against the
// repository, never by the generator itself.
type CodeGenerator func() string

// NewCodeGenerator returns a generator drawing uniformly from the
// base62 alphabet at the fixed code length.
func NewCodeGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, CodeLength)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
