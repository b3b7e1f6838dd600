package crypto

import (
	"crypto/sha1" //nolint:gosec // git object id, not a security primitive
	"encoding/hex"
	"strconv"
)

// BlobSHA returns the git blob object id of data:
// sha1("blob " + len + "\x00" + data), hex encoded.
// Used as the revision token of a stored file.
func BlobSHA(data []byte) string {
	h := sha1.New() //nolint:gosec
	h.Write([]byte("blob " + strconv.Itoa(len(data)) + "\x00"))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
