package entity

import (
	"fmt"
	"regexp"
	"strconv"
)

// Literal is a program input encoded as a string with an Aleo type suffix,
// e.g. "123field" or "456u32". The receiving program parses the suffix, so
// the encoding must be passed through to the host verbatim.
type Literal string

// Field encodes an unsigned integer as a field literal.
func Field(v uint64) Literal {
	return Literal(strconv.FormatUint(v, 10) + "field")
}

// U8 encodes a u8 literal.
func U8(v uint8) Literal {
	return Literal(strconv.FormatUint(uint64(v), 10) + "u8")
}

// U32 encodes a u32 literal.
func U32(v uint32) Literal {
	return Literal(strconv.FormatUint(uint64(v), 10) + "u32")
}

// U64 encodes a u64 literal.
func U64(v uint64) Literal {
	return Literal(strconv.FormatUint(v, 10) + "u64")
}

// AddressLiteral wraps an already validated account address.
func AddressLiteral(addr string) Literal {
	return Literal(addr)
}

var literalPattern = regexp.MustCompile(`^\d+(field|scalar|group|u8|u16|u32|u64|u128|i8|i16|i32|i64|i128)$`)

// Validate checks that the literal is either a suffixed numeric literal, a
// boolean, or an account address. Malformed inputs are rejected client-side
// before a transaction request reaches the host.
func (l Literal) Validate() error {
	s := string(l)
	if s == "" {
		return fmt.Errorf("empty input literal")
	}
	if s == "true" || s == "false" {
		return nil
	}
	if IsValidAddress(s) {
		return nil
	}
	if literalPattern.MatchString(s) {
		return nil
	}
	return fmt.Errorf("malformed input literal: %q", s)
}

// ValidateInputs validates a whole transaction input list.
func ValidateInputs(inputs []Literal) error {
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	return nil
}
