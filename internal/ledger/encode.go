// Package ledger mirrors local entities to the chain through the host
// process. Sync is explicit and observable: every queued item carries a
// status instead of vanishing into an unawaited call.
package ledger

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// EncodeBookmark digests a bookmark's identifying content into field
// literals for the ledger program. Each 8-byte limb of a BLAKE2b-256 digest
// becomes one field; the program stores them as an opaque commitment.
func EncodeBookmark(bm *entity.Bookmark) []entity.Literal {
	sum := blake2b.Sum256([]byte(bm.URL + "\x00" + bm.Title))

	fields := make([]entity.Literal, 0, 4)
	for i := 0; i < len(sum); i += 8 {
		limb := binary.LittleEndian.Uint64(sum[i : i+8])
		fields = append(fields, entity.Field(limb))
	}
	return fields
}

// EncodeNote digests a note's content the same way.
func EncodeNote(n *entity.Note) []entity.Literal {
	sum := blake2b.Sum256([]byte(n.Title + "\x00" + n.Content))

	fields := make([]entity.Literal, 0, 4)
	for i := 0; i < len(sum); i += 8 {
		limb := binary.LittleEndian.Uint64(sum[i : i+8])
		fields = append(fields, entity.Field(limb))
	}
	return fields
}
