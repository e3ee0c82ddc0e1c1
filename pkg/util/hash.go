package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

// Md5Hex hashes the concatenation of chunks, e.g. the planes of a frame
func Md5Hex(chunks ...[]byte) string {
	h := md5.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashUUID fingerprints any json-encodable value as a name-based (v3) UUID.
// Values that fail to encode yield the nil UUID.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewMD5(uuid.Nil, raw).String()
}
