package programfmt

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/opal-lang/mirror/core/ast"
)

// MarshalCanonical produces the deterministic CBOR encoding of program.
// Programs with equal ASTs encode to identical bytes whatever their source
// layout was.
func MarshalCanonical(program ast.Program) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	data, err := encMode.Marshal(NewDocument(program))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalCanonical decodes bytes produced by MarshalCanonical
func UnmarshalCanonical(data []byte) (ast.Program, error) {
	var doc Document
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("CBOR decoding failed: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return doc.Program()
}

// Fingerprint returns the hex BLAKE2b-256 digest of the canonical encoding
func Fingerprint(program ast.Program) (string, error) {
	data, err := MarshalCanonical(program)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
