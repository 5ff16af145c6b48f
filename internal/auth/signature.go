package auth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"condogov/internal/condo/models"
	dErrors "condogov/pkg/domain-errors"
)

const personalSignPrefix = "\x19Ethereum Signed Message:\n"

// hashPersonalMessage computes the EIP-191 personal-sign digest of a
// message: keccak256(prefix || len(message) || message).
func hashPersonalMessage(message string) []byte {
	h := sha3.NewLegacyKeccak256()
	fmt.Fprintf(h, "%s%d%s", personalSignPrefix, len(message), message)
	return h.Sum(nil)
}

// RecoverSigner recovers the wallet address that produced the given
// personal-sign signature over message. The signature is the usual
// 65-byte hex string r || s || v, with or without a 0x prefix.
func RecoverSigner(message, signature string) (models.Address, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil || len(raw) != 65 {
		return "", dErrors.New(dErrors.CodeUnauthorized, "malformed signature")
	}

	// RecoverCompact wants the recovery byte first; wallets emit it last.
	compact := make([]byte, 65)
	v := raw[64]
	if v < 27 {
		v += 27
	}
	compact[0] = v
	copy(compact[1:], raw[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hashPersonalMessage(message))
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "signature does not verify")
	}
	return addressFromPubKey(pub), nil
}

// addressFromPubKey derives the wallet address from a public key: the
// last 20 bytes of the keccak256 of the uncompressed key sans type byte.
func addressFromPubKey(pub *secp256k1.PublicKey) models.Address {
	uncompressed := pub.SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(uncompressed[1:])
	digest := h.Sum(nil)
	return models.Address("0x" + hex.EncodeToString(digest[12:])).Normalized()
}
